package firebase

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

var App *firebase.App

// Storage folders, one per kind of uploaded image.
const (
	FolderBanners  = "banners"
	FolderOffers   = "offers"
	FolderProducts = "products"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

// objectPath builds "<folder>/<unix>_<name>" for a new upload.
func objectPath(folder, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", folder, now.Unix(), sanitizeFilename(filename))
}

const publicHost = "https://storage.googleapis.com/"

// PublicURL is the unauthenticated download URL of an object.
func PublicURL(bucketName, objectPath string) string {
	return publicHost + bucketName + "/" + objectPath
}

// ObjectPathFromURL reverses PublicURL, dropping any query string, so an
// image URL stored on a banner, offer or product can be deleted.
func ObjectPathFromURL(publicURL string) (string, error) {
	rest, ok := strings.CutPrefix(publicURL, publicHost)
	if !ok {
		return "", fmt.Errorf("not a storage URL: %q", publicURL)
	}
	rest, _, _ = strings.Cut(rest, "?")
	_, path, ok := strings.Cut(rest, "/")
	if !ok || path == "" {
		return "", fmt.Errorf("storage URL has no object path: %q", publicURL)
	}
	return path, nil
}

func Init() {
	credJSON := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var opts []option.ClientOption

	if credJSON != "" {
		if strings.HasPrefix(credJSON, "{") {
			log.Println("Using Firebase credentials from environment variable")
			opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
		} else {
			log.Println("Using Firebase credentials from file:", credJSON)
			opts = append(opts, option.WithCredentialsFile(credJSON))
		}
	} else {
		log.Println("Warning: GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
	}

	app, err := firebase.NewApp(context.Background(), nil, opts...)
	if err != nil {
		log.Fatalf("Firebase init failed: %v", err)
	}

	App = app
	log.Println("Firebase initialized successfully")
}

func bucket(ctx context.Context) (*storage.BucketHandle, string, error) {
	if App == nil {
		return nil, "", fmt.Errorf("firebase app not initialized")
	}

	bucketName := os.Getenv("FIREBASE_STORAGE_BUCKET")
	if bucketName == "" {
		return nil, "", fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	client, err := App.Storage(ctx)
	if err != nil {
		return nil, "", err
	}

	b, err := client.Bucket(bucketName)
	if err != nil {
		return nil, "", err
	}
	return b, bucketName, nil
}

// upload streams r into folder and returns its public URL.
func upload(ctx context.Context, folder string, r io.Reader, filename, contentType string) (string, error) {
	b, bucketName, err := bucket(ctx)
	if err != nil {
		return "", err
	}

	path := objectPath(folder, filename, time.Now())
	obj := b.Object(path)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", err
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %v", err)
	}

	// Make object publicly readable so the URL works without authentication
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		log.Printf("Warning: failed to set public ACL on %s: %v", path, err)
	}

	return PublicURL(bucketName, path), nil
}

// DeleteFile deletes a file from Firebase Storage given its object path
func DeleteFile(ctx context.Context, objectPath string) error {
	b, bucketName, err := bucket(ctx)
	if err != nil {
		return err
	}

	if err := b.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %v", objectPath, err)
	}

	log.Printf("Deleted file %s from bucket %s", objectPath, bucketName)
	return nil
}
