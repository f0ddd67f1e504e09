package service

import "github.com/drelocd/estate-service/internal/config"

// pageLimits clamps client-supplied pagination to configured bounds.
type pageLimits struct {
	defaultSize int
	maxSize     int
}

func newPageLimits(cfg config.ListingConfig) pageLimits {
	return pageLimits{defaultSize: cfg.DefaultPageSize, maxSize: cfg.MaxPageSize}
}

// resolve turns a 1-based page and page size into LIMIT/OFFSET.
func (p pageLimits) resolve(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = p.defaultSize
	}
	if pageSize > p.maxSize {
		pageSize = p.maxSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
