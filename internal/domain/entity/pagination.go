package entity

// Pagination bounds
const (
	DefaultPage        = 1
	DefaultPageLimit   = 20
	MaxPageLimit       = 100
	DefaultGallerySize = 12
)

// PageRequest is a 1-based page selector
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and clamps the limit
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// PageInfo describes a returned page
type PageInfo struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NewPageInfo computes the page metadata for a total row count
func NewPageInfo(req PageRequest, total int64) PageInfo {
	req = req.Normalize()
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return PageInfo{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}

// HistoryType filters history by input type
type HistoryType string

const (
	HistoryTypeAll   HistoryType = "all"
	HistoryTypeText  HistoryType = "text"
	HistoryTypeImage HistoryType = "image"
)

// HistoryStatus filters history by task status
type HistoryStatus string

const (
	HistoryStatusAll        HistoryStatus = "all"
	HistoryStatusCompleted  HistoryStatus = "completed"
	HistoryStatusProcessing HistoryStatus = "processing"
	HistoryStatusFailed     HistoryStatus = "failed"
)

// HistorySort orders history by creation time
type HistorySort string

const (
	HistorySortNewest HistorySort = "newest"
	HistorySortOldest HistorySort = "oldest"
)

// HistoryFilter narrows a history listing
type HistoryFilter struct {
	Type   HistoryType
	Status HistoryStatus
	Sort   HistorySort
}

// Normalize replaces empty values with defaults
func (f HistoryFilter) Normalize() HistoryFilter {
	if f.Type == "" {
		f.Type = HistoryTypeAll
	}
	if f.Status == "" {
		f.Status = HistoryStatusAll
	}
	if f.Sort == "" {
		f.Sort = HistorySortNewest
	}
	return f
}

// InputType returns the input type to filter on, empty for all
func (f HistoryFilter) InputType() InputType {
	if f.Type == HistoryTypeAll {
		return ""
	}
	return InputType(f.Type)
}

// TaskStatus returns the status to filter on, empty for all
func (f HistoryFilter) TaskStatus() TaskStatus {
	if f.Status == HistoryStatusAll {
		return ""
	}
	return TaskStatus(f.Status)
}
