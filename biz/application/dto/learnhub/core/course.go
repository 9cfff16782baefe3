package core

import "learnhub/biz/application/dto/basic"

type CreateCourseReq struct {
	Title       string  `json:"title" vd:"len($)>0"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	ImageKey    string  `json:"imageKey"`
	Price       float64 `json:"price" vd:"$>=0"`
	Currency    string  `json:"currency"`
	Language    string  `json:"language"`
	Level       string  `json:"level"`
	CourseType  string  `json:"courseType"`
	FaqVideoKey string  `json:"faqVideoKey"`
	CategoryID  string  `json:"categoryId"`
}

type CreateCourseResp struct {
	Course *Course `json:"course"`
}

// UpdateCourseReq 整体更新，课程类型不可修改
type UpdateCourseReq struct {
	CourseID    string  `json:"courseId" vd:"len($)>0"`
	Title       string  `json:"title" vd:"len($)>0"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	ImageKey    string  `json:"imageKey"`
	Price       float64 `json:"price" vd:"$>=0"`
	Currency    string  `json:"currency"`
	Language    string  `json:"language"`
	Level       string  `json:"level"`
	FaqVideoKey string  `json:"faqVideoKey"`
	CategoryID  string  `json:"categoryId"`
}

type UpdateCourseResp struct {
	Course *Course `json:"course"`
}

type CourseIDReq struct {
	CourseID string `json:"courseId" query:"courseId" vd:"len($)>0"`
}

type ReviewCourseReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
	Approve  bool   `json:"approve"`
}

type PublishCourseReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
	Publish  bool   `json:"publish"`
}

type CourseStatusResp struct {
	Course *Course `json:"course"`
}

type GetCourseResp struct {
	Detail *CourseDetail `json:"detail"`
}

type ListInstructorCoursesReq struct {
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListPublishedCoursesReq struct {
	CategoryID        string                   `json:"categoryId" query:"categoryId"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListCoursesResp struct {
	Courses []*Course `json:"courses"`
	Total   int64     `json:"total"`
}
