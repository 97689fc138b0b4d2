package handler

import "carenote/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Report  *ReportHandler
	Upload  *UploadHandler
	Image   *ImageHandler
	Export  *ExportHandler
	Print   *PrintHandler
	Options *OptionsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Report:  NewReportHandler(svc.Report),
		Upload:  NewUploadHandler(svc.Upload),
		Image:   NewImageHandler(svc.Image),
		Export:  NewExportHandler(svc.Export),
		Print:   NewPrintHandler(svc.Print),
		Options: NewOptionsHandler(),
	}
}
