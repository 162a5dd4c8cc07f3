package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *GalleryError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *GalleryError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *GalleryError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Input errors

// InputMissing reports the top-level HTML document is absent. It is the only
// condition that aborts a batch before any slug is processed.
func InputMissing(path string) *GalleryError {
	return New(CategoryNotFound, SeverityFatal, "input HTML not found").
		WithContext("path", path)
}

// NotFound reports a missing content file; the slug is skipped.
func NotFound(slug, path string) *GalleryError {
	return New(CategoryNotFound, SeverityWarning, "content file not found").
		WithContext("slug", slug).
		WithContext("path", path)
}

// ParseError reports malformed content for a slug; the slug is skipped.
func ParseError(slug string, cause error) *GalleryError {
	return Wrap(cause, CategoryParse, SeverityWarning, "content parse failed for "+slug).
		WithContext("slug", slug)
}

// Document errors

func StructureNotFound(marker string) *GalleryError {
	return New(CategoryStructure, SeverityWarning, "document structure not found").
		WithContext("marker", marker)
}

func VersionFormatError(marker, reason string) *GalleryError {
	return New(CategoryVersion, SeverityWarning, "version marker unusable").
		WithContext("marker", marker).
		WithContext("reason", reason)
}

// Filesystem errors

func ReadFailed(path string, cause error) *GalleryError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "read failed").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *GalleryError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *GalleryError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
