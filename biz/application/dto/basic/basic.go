package basic

// UserMeta 来自身份提供方令牌的用户信息
type UserMeta struct {
	UserId string `json:"userId" mapstructure:"sub"`
	Email  string `json:"email" mapstructure:"email"`
	Name   string `json:"name" mapstructure:"name"`
	Exp    int64  `json:"exp" mapstructure:"exp"`
}

func (m *UserMeta) GetUserId() string {
	if m == nil {
		return ""
	}
	return m.UserId
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty" query:"page"`
	Limit *int64 `json:"limit,omitempty" query:"limit"`
}

func (p *PaginationOptions) GetPage() int64 {
	if p == nil || p.Page == nil || *p.Page < 1 {
		return 1
	}
	return *p.Page
}

func (p *PaginationOptions) GetLimit() int64 {
	if p == nil || p.Limit == nil || *p.Limit < 1 {
		return 10
	}
	return *p.Limit
}

type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}
