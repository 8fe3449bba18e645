package dto

import (
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// HistoryQueryRequest holds the query parameters of GET /api/polaroid-history
type HistoryQueryRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type   string `form:"type" binding:"omitempty,oneof=text image all"`
	Status string `form:"status" binding:"omitempty,oneof=completed processing failed all"`
	Sort   string `form:"sort" binding:"omitempty,oneof=newest oldest"`
}

// ToQuery converts the request to a use case query
func (r HistoryQueryRequest) ToQuery() usecase.HistoryQuery {
	return usecase.HistoryQuery{
		Page: entity.PageRequest{Page: r.Page, Limit: r.Limit},
		Filter: entity.HistoryFilter{
			Type:   entity.HistoryType(r.Type),
			Status: entity.HistoryStatus(r.Status),
			Sort:   entity.HistorySort(r.Sort),
		},
	}
}

// Pagination describes a returned page
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination maps page metadata
func NewPagination(info entity.PageInfo) Pagination {
	return Pagination{
		Page:       info.Page,
		Limit:      info.Limit,
		Total:      info.Total,
		TotalPages: info.TotalPages,
		HasNext:    info.HasNext,
		HasPrev:    info.HasPrev,
	}
}

// HistoryFilters echoes the applied filters
type HistoryFilters struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Sort   string `json:"sort"`
}

// HistoryResponse is returned by GET /api/polaroid-history
type HistoryResponse struct {
	Records    []GenerationRecord `json:"records"`
	Pagination Pagination         `json:"pagination"`
	Filters    HistoryFilters     `json:"filters"`
}

// NewHistoryResponse maps a history page
func NewHistoryResponse(page *usecase.HistoryPage, codec coreport.IDCodec) HistoryResponse {
	return HistoryResponse{
		Records:    NewGenerationRecords(page.Records, codec),
		Pagination: NewPagination(page.Pagination),
		Filters: HistoryFilters{
			Type:   string(page.Filters.Type),
			Status: string(page.Filters.Status),
			Sort:   string(page.Filters.Sort),
		},
	}
}

// DeleteHistoryRequest is the body of DELETE /api/polaroid-history
type DeleteHistoryRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=100"`
}

// DeleteHistoryResponse reports removed records
type DeleteHistoryResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

// StatsResponse is returned by GET /api/polaroid-history/stats
type StatsResponse struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Processing int64 `json:"processing"`
	Failed     int64 `json:"failed"`
}

// GalleryQueryRequest holds the query parameters of GET /api/gallery
type GalleryQueryRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Type     string `form:"type" binding:"omitempty,oneof=text image"`
}

// GalleryResponse is returned by GET /api/gallery
type GalleryResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Data     []GenerationRecord `json:"data"`
}

// NewGalleryResponse maps a gallery page
func NewGalleryResponse(page *usecase.GalleryPage, codec coreport.IDCodec) GalleryResponse {
	return GalleryResponse{
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Data:     NewGenerationRecords(page.Records, codec),
	}
}

// DownloadRequest is the body of POST /api/polaroid/:id/download
type DownloadRequest struct {
	DownloadType string `json:"download_type" binding:"omitempty,oneof=original thumbnail"`
}

// ViewRequest is the body of POST /api/polaroid/:id/view
type ViewRequest struct {
	ViewDuration *int   `json:"view_duration" binding:"omitempty,min=0"`
	Referrer     string `json:"referrer" binding:"max=2048"`
}

// EngagementResponse acknowledges a recorded download or view
type EngagementResponse struct {
	Success bool `json:"success"`
}
