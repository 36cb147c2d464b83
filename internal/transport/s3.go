package transport

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// s3Transport drives an S3-compatible bucket via minio-go, the same
// client family the retrieval pack's storj/storj dependency is built
// around (there as the v6 predecessor, here the current v7 major).
type s3Transport struct {
	client *minio.Client
	bucket string
	prefix string
}

func newS3Transport(u *url.URL, settings *config.Settings) (*s3Transport, error) {
	const op = "transport.s3.newS3Transport"

	endpoint := u.Host
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}

	var creds *credentials.Credentials
	if settings != nil && settings.AuthUser != "" {
		creds = credentials.NewStaticV4(settings.AuthUser, settings.AuthPassword, "")
	} else {
		creds = credentials.NewEnvAWS()
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: true,
	})
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	bucket, prefix := splitBucketPath(u.Path)
	return &s3Transport{client: client, bucket: bucket, prefix: prefix}, nil
}

func splitBucketPath(path string) (bucket, prefix string) {
	path = strings.TrimPrefix(path, "/")
	parts := strings.SplitN(path, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix
}

func (t *s3Transport) key(remoteKey string) string {
	if t.prefix == "" {
		return remoteKey
	}
	return strings.TrimSuffix(t.prefix, "/") + "/" + remoteKey
}

func (t *s3Transport) Connect() error {
	const op = "transport.s3.Connect"
	exists, err := t.client.BucketExists(context.Background(), t.bucket)
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if !exists {
		if err := t.client.MakeBucket(context.Background(), t.bucket, minio.MakeBucketOptions{}); err != nil {
			return ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
	}
	return nil
}

func (t *s3Transport) SendData(remoteKey string, buf []byte) error {
	const op = "transport.s3.SendData"
	_, err := t.client.PutObject(context.Background(), t.bucket, t.key(remoteKey),
		bytes.NewReader(buf), int64(len(buf)), minio.PutObjectOptions{})
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

func (t *s3Transport) ReceiveData(remoteKey string) ([]byte, error) {
	const op = "transport.s3.ReceiveData"
	obj, err := t.client.GetObject(context.Background(), t.bucket, t.key(remoteKey), minio.GetObjectOptions{})
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if errResp := minio.ToErrorResponse(err); errResp.Code == "NoSuchKey" {
			return nil, ebterr.New(op, ebterr.KindNotFound, "remote key not found: "+remoteKey)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return data, nil
}

func (t *s3Transport) ListFiles(prefix string) ([]string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keys []string
	for obj := range t.client.ListObjects(ctx, t.bucket, minio.ListObjectsOptions{
		Prefix:    t.key(prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, ebterr.Wrap("transport.s3.ListFiles", ebterr.KindFileIO, obj.Err)
		}
		keys = append(keys, strings.TrimPrefix(obj.Key, t.key("")))
	}
	return keys, nil
}

func (t *s3Transport) DeleteFiles(keys []string) error {
	const op = "transport.s3.DeleteFiles"
	for _, key := range keys {
		if err := t.client.RemoveObject(context.Background(), t.bucket, t.key(key), minio.RemoveObjectOptions{}); err != nil {
			return ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
	}
	return nil
}

func (t *s3Transport) Close() error { return nil }
