package handlers

import (
	"context"
	"mime/multipart"
)

type mockStorage struct {
	UploadFn        func(folder, filename, contentType string) (string, error)
	DeleteFileFn    func(objectPath string) error
	DeleteFileCalls []string
	UploadCallCount int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) upload(folder, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadFn != nil {
		return m.UploadFn(folder, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/" + folder + "/test_image.jpg", nil
}

func (m *mockStorage) UploadBannerImage(_ context.Context, _ multipart.File, filename, contentType string) (string, error) {
	return m.upload("banners", filename, contentType)
}

func (m *mockStorage) UploadOfferImage(_ context.Context, _ multipart.File, filename, contentType string) (string, error) {
	return m.upload("offers", filename, contentType)
}

func (m *mockStorage) UploadProductImage(_ context.Context, _ multipart.File, filename, contentType string) (string, error) {
	return m.upload("products", filename, contentType)
}

func (m *mockStorage) DeleteFile(_ context.Context, objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}
