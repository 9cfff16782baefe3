package core

import "learnhub/biz/application/dto/basic"

// SyncUserReq 身份提供方 webhook 推送的用户资料
type SyncUserReq struct {
	ExternalID string `json:"externalId" vd:"len($)>0"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

type SyncUserResp struct {
	User *UserInfo `json:"user"`
}

type GetUserInfoReq struct{}

type GetUserInfoResp struct {
	User *UserInfo `json:"user"`
}

type UpdateInterestsReq struct {
	Interests []string `json:"interests"`
}

type ListWalletTransactionsReq struct {
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListWalletTransactionsResp struct {
	Transactions []*WalletTransaction `json:"transactions"`
	Total        int64                `json:"total"`
}

type ApplySignedUrlReq struct {
	Prefix *string `json:"prefix"`
	Suffix *string `json:"suffix"`
}

func (r *ApplySignedUrlReq) GetPrefix() string {
	if r == nil || r.Prefix == nil {
		return ""
	}
	return *r.Prefix
}

func (r *ApplySignedUrlReq) GetSuffix() string {
	if r == nil || r.Suffix == nil {
		return ""
	}
	return *r.Suffix
}

type ApplySignedUrlResp struct {
	Url string `json:"url"`
	Key string `json:"key"`
}

type CreateCategoryReq struct {
	Name string `json:"name" vd:"len($)>0"`
}

type CreateCategoryResp struct {
	Category *Category `json:"category"`
}

type ListCategoriesReq struct{}

type ListCategoriesResp struct {
	Categories []*Category `json:"categories"`
}

type BecomeInstructorReq struct{}
