package dto

// ── 上传 / 图片代理 DTO ──

// UploadResponse POST /upload
// Drive 后端返回 fileId + fileUrl，其他后端返回 url
type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	FileID  string `json:"fileId,omitempty"`
	FileURL string `json:"fileUrl"`
}

// ImageProxyResponse GET /image-proxy/:resourceId
type ImageProxyResponse struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}
