package share

import "errors"

var (
	// ErrShareUnavailable means no native sharer exists; the share view was shown instead.
	ErrShareUnavailable = errors.New("native share unavailable")
	// ErrShareCanceled means the user dismissed the native share sheet or it was not allowed.
	// It is not shown to the user.
	ErrShareCanceled = errors.New("share canceled")
	// ErrClipboardDenied means the clipboard refused a write.
	ErrClipboardDenied = errors.New("clipboard write denied")
	// ErrCopyFailed means neither the clipboard nor the legacy copier accepted the URL.
	ErrCopyFailed = errors.New("copy failed")
	// ErrAssetLoadFailed means a pre-generated QR image could not be loaded.
	ErrAssetLoadFailed = errors.New("asset load failed")
	// ErrRecordNotLoaded means the profile record is not available yet.
	ErrRecordNotLoaded = errors.New("profile record not loaded")
)
