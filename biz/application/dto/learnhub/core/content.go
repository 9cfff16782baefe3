package core

type CreateSectionReq struct {
	CourseID    string `json:"courseId" vd:"len($)>0"`
	Title       string `json:"title" vd:"len($)>0"`
	Description string `json:"description"`
}

type UpdateSectionReq struct {
	SectionID   string  `json:"sectionId" vd:"len($)>0"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"isPublished"`
}

type SectionResp struct {
	Section *Section `json:"section"`
}

type CreateVideoReq struct {
	SectionID   string `json:"sectionId" vd:"len($)>0"`
	Title       string `json:"title" vd:"len($)>0"`
	Description string `json:"description"`
	AssetKey    string `json:"assetKey"`
	IsFree      bool   `json:"isFree"`
}

type UpdateVideoReq struct {
	VideoID     string   `json:"videoId" vd:"len($)>0"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	IsPublished *bool    `json:"isPublished"`
	IsFree      *bool    `json:"isFree"`
	AssetKey    *string  `json:"assetKey"`
	MuxData     *MuxData `json:"muxData"`
}

type VideoResp struct {
	Video *Video `json:"video"`
}

type CreateAttachmentReq struct {
	SectionID string `json:"sectionId" vd:"len($)>0"`
	Name      string `json:"name" vd:"len($)>0"`
	AssetKey  string `json:"assetKey" vd:"len($)>0"`
}

type AttachmentResp struct {
	Attachment *Attachment `json:"attachment"`
}

// ContentIDReq 删除章节、视频或附件
type ContentIDReq struct {
	ID string `json:"id" vd:"len($)>0"`
}

// ReorderReq 把内容移动到 Position，超出范围时取边界
type ReorderReq struct {
	ID       string `json:"id" vd:"len($)>0"`
	Position int64  `json:"position"`
}
