// Package storage serves translation bundles from S3-compatible object storage.
//
// S3Loader implements i18n.Loader, so a bucket can back the External tier of an
// engine instead of a local directory:
//
//	cfg := storage.Config{
//		Bucket:    "translations",
//		Region:    "eu-central-1",
//		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
//		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
//	}
//
//	engine, err := i18n.New("i18n.messages",
//		i18n.WithExternalLoaderFactory(storage.Factory(cfg)),
//		i18n.WithBaseDirectory("overrides"),
//	)
//
// The base directory becomes a key prefix: "overrides/i18n/messages/it_it.lang".
// Objects are downloaded on every Open, so wrap the loader with i18n.NewCachedLoader
// to avoid a round trip per reload.
//
// # Errors
//
// A missing object matches both ErrNotFound and i18n.ErrResourceNotFound.
// Other S3 failures map onto ErrAccessDenied, ErrReadFailed or ErrPresignFailed.
// Locate returns a presigned URL valid for Config.URLExpiry.
package storage
