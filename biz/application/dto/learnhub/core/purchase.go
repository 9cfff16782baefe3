package core

import "learnhub/biz/application/dto/basic"

type CreatePurchaseReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
}

type CreatePurchaseResp struct {
	Purchase *Purchase `json:"purchase"`
}

type ListPurchasesReq struct {
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListPurchasesResp struct {
	Purchases []*Purchase `json:"purchases"`
	Total     int64       `json:"total"`
}

type CreateFeedbackReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
	Rating   int64  `json:"rating"`
	Comment  string `json:"comment"`
}

type UpdateFeedbackReq struct {
	FeedbackID string `json:"feedbackId" vd:"len($)>0"`
	Rating     int64  `json:"rating"`
	Comment    string `json:"comment"`
}

type FeedbackResp struct {
	Feedback *Feedback `json:"feedback"`
}

type DeleteFeedbackReq struct {
	FeedbackID string `json:"feedbackId" vd:"len($)>0"`
}

type ListFeedbacksReq struct {
	CourseID          string                   `json:"courseId" query:"courseId" vd:"len($)>0"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListFeedbacksResp struct {
	Feedbacks     []*Feedback `json:"feedbacks"`
	Total         int64       `json:"total"`
	AverageRating float64     `json:"averageRating"`
}
