// File: internal/dto/response.go
package dto

// HTTPError 全域 JSON 錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// message 錯誤描述
	Message string `json:"message" example:"database unhealthy"`
}

// PingResponse 健康檢查回應模型
// swagger:model dto.PingResponse
type PingResponse struct {
	Message  string `json:"message" example:"pong"`
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache" example:"ok"`
}
