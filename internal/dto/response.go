package dto

// ListResponse 列表响应
type ListResponse struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}
