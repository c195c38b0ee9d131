package storage

import "time"

// Bucket describes a bucket returned by ListBuckets.
type Bucket struct {
	Name      string
	Region    string
	CreatedAt time.Time
}

// Object describes an object in a bucket.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
}

// DeleteError records a key that could not be deleted.
type DeleteError struct {
	Key     string
	Code    string
	Message string
}

// DeleteResult is the outcome of a DeleteObjects call.
type DeleteResult struct {
	Deleted []string
	Errors  []DeleteError
}

// EmptyResult is the outcome of emptying a bucket.
type EmptyResult struct {
	// Deleted is the number of objects removed
	Deleted int

	// Keys lists the removed objects in deletion order
	Keys []string

	// Errors holds per-key failures reported by S3
	Errors []DeleteError
}

// UploadResult contains metadata about an uploaded object.
type UploadResult struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
	ETag        string
}

// WebsiteConfig holds the static website hosting documents.
type WebsiteConfig struct {
	IndexDocument string
	ErrorDocument string
}

// PublicAccessBlock mirrors the four S3 public access block switches.
type PublicAccessBlock struct {
	BlockPublicAcls       bool
	IgnorePublicAcls      bool
	BlockPublicPolicy     bool
	RestrictPublicBuckets bool
}

// AllowPublic returns a PublicAccessBlock with every switch turned off.
func AllowPublic() PublicAccessBlock {
	return PublicAccessBlock{}
}
