package firebase

import (
	"context"
	"mime/multipart"
)

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadBannerImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error)
	UploadOfferImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error)
	UploadProductImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error)
	DeleteFile(ctx context.Context, objectPath string) error
}

// FirebaseStorageClient is the real implementation backed by the initialized App.
type FirebaseStorageClient struct{}

func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}

func (f *FirebaseStorageClient) UploadBannerImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error) {
	return upload(ctx, FolderBanners, file, filename, contentType)
}

func (f *FirebaseStorageClient) UploadOfferImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error) {
	return upload(ctx, FolderOffers, file, filename, contentType)
}

func (f *FirebaseStorageClient) UploadProductImage(ctx context.Context, file multipart.File, filename, contentType string) (string, error) {
	return upload(ctx, FolderProducts, file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(ctx context.Context, objectPath string) error {
	return DeleteFile(ctx, objectPath)
}
