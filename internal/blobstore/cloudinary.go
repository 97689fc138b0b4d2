package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const cloudinaryDeliveryBase = "https://res.cloudinary.com"

// CloudinaryStore 使用 upload preset 的无签名上传
type CloudinaryStore struct {
	client       *http.Client
	apiBase      string
	deliveryBase string
	cloudName    string
	uploadPreset string
}

// NewCloudinaryStore 创建 CloudinaryStore；client 为 nil 时使用 http.DefaultClient
func NewCloudinaryStore(client *http.Client, apiBase, cloudName, uploadPreset string) *CloudinaryStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &CloudinaryStore{
		client:       client,
		apiBase:      strings.TrimRight(apiBase, "/"),
		deliveryBase: cloudinaryDeliveryBase,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *CloudinaryStore) Upload(ctx context.Context, name, mimeType string, r io.Reader, _ int64) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	if err := mw.WriteField("upload_preset", s.uploadPreset); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", s.apiBase, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("上传到 Cloudinary 失败: %w", err)
	}
	defer resp.Body.Close()

	var out cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析 Cloudinary 响应失败 (status=%d): %w", resp.StatusCode, err)
	}
	if out.SecureURL == "" {
		msg := "缺少 secure_url"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("Cloudinary 上传失败 (status=%d): %s", resp.StatusCode, msg)
	}

	return &UploadResult{
		FileID:  out.PublicID,
		URL:     out.SecureURL,
		FileURL: out.SecureURL,
	}, nil
}

func (s *CloudinaryStore) Fetch(ctx context.Context, resourceID string) (*Blob, error) {
	src := fmt.Sprintf("%s/%s/image/upload/%s", s.deliveryBase, s.cloudName, resourceID)
	return fetchURL(ctx, s.client, src)
}

// fetchURL GET 一个 URL，非 2xx 视为失败
func fetchURL(ctx context.Context, client *http.Client, src string) (*Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求图片失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("请求图片失败: status=%d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	return &Blob{Data: data, MimeType: resp.Header.Get("Content-Type")}, nil
}
