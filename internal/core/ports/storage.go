package ports

import "context"

// StorageSigner creates signed upload URLs against the external storage
// service so browsers can upload directly without holding credentials.
type StorageSigner interface {
	CreateSignedUploadURL(ctx context.Context, bucket, objectKey string) (string, error)
}
