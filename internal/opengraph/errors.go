package opengraph

import "errors"

var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("failed to capture preview")
	ErrTemplate       = errors.New("failed to render preview template")
	ErrPoolClosed     = errors.New("screenshot pool is closed")
)
