package core

import "learnhub/biz/application/dto/basic"

type CreateCommentReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
	Title    string `json:"title"`
	Content  string `json:"content" vd:"len($)>0"`
}

type UpdateCommentReq struct {
	CommentID string `json:"commentId" vd:"len($)>0"`
	Title     string `json:"title"`
	Content   string `json:"content" vd:"len($)>0"`
}

type CommentResp struct {
	Comment *Comment `json:"comment"`
}

type CreateReplyReq struct {
	CommentID string `json:"commentId" vd:"len($)>0"`
	Title     string `json:"title"`
	Content   string `json:"content" vd:"len($)>0"`
}

type UpdateReplyReq struct {
	ReplyID string `json:"replyId" vd:"len($)>0"`
	Title   string `json:"title"`
	Content string `json:"content" vd:"len($)>0"`
}

type ReplyResp struct {
	Reply *Reply `json:"reply"`
}

type DeleteCommentReq struct {
	CommentID string `json:"commentId" vd:"len($)>0"`
}

type DeleteReplyReq struct {
	ReplyID string `json:"replyId" vd:"len($)>0"`
}

type ListCommentsReq struct {
	CourseID          string                   `json:"courseId" query:"courseId" vd:"len($)>0"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListCommentsResp struct {
	Comments []*CommentDetail `json:"comments"`
	Total    int64            `json:"total"`
}
