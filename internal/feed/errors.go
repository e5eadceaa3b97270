package feed

import "errors"

var (
	// ErrInvalidSite indicates the site description cannot produce a feed.
	ErrInvalidSite = errors.New("invalid feed site")
	// ErrEntryContent indicates an entry body failed to convert to HTML.
	ErrEntryContent = errors.New("failed to convert entry content")
	// ErrEncode indicates the feed document failed to encode.
	ErrEncode = errors.New("failed to encode feed")
)
