package util

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// UploadDocumentToGCS stores a base64-encoded document under objectName and
// returns its public URL plus the stored size. A "data:...;base64," prefix is
// stripped if present.
func UploadDocumentToGCS(base64Data, bucketName, objectName, contentType string) (string, int64, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", 0, err
	}
	defer client.Close()

	if strings.Contains(base64Data, ",") {
		base64Data = strings.SplitN(base64Data, ",", 2)[1]
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", 0, err
	}

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	size, err := w.Write(data)
	if err != nil {
		return "", 0, err
	}
	if err := w.Close(); err != nil {
		return "", 0, err
	}

	return PublicGCSURL(bucketName, objectName), int64(size), nil
}

// DeleteObjectsWithPrefix removes every object under prefix/ and returns the
// deleted object names.
func DeleteObjectsWithPrefix(bucketName, prefix string) ([]string, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	bkt := client.Bucket(bucketName)
	prefix = strings.TrimSuffix(prefix, "/")

	deleted := []string{}
	it := bkt.Objects(ctx, &storage.Query{Prefix: prefix + "/"})
	for {
		obj, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := bkt.Object(obj.Name).Delete(ctx); err != nil {
			return nil, err
		}
		deleted = append(deleted, obj.Name)
	}

	return deleted, nil
}

func SanitizePart(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	re := regexp.MustCompile(`[^a-z0-9_\-]`)
	s = re.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

// DocumentObjectName builds the object path for a bursary supporting document.
func DocumentObjectName(schoolID, bursaryID, filename string) string {
	ext := DocExt(filename, "")
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("bursaries/%s/%s/%s%s", SanitizePart(schoolID), SanitizePart(bursaryID), SanitizePart(base), ext)
}

func PublicGCSURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// ObjectPathFromGCSURL extracts the object path from the URL formats we emit.
// Query params (signed URLs) are ignored.
func ObjectPathFromGCSURL(bucket, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.Fragment = ""

	host := strings.ToLower(u.Host)
	p := strings.TrimPrefix(u.Path, "/")

	if host == "storage.googleapis.com" {
		return strings.TrimPrefix(p, bucket+"/"), nil
	}
	if strings.HasSuffix(host, ".storage.googleapis.com") {
		return p, nil
	}
	return p, nil
}

// DocExt maps a filename (or, failing that, a MIME type) to the extension we
// store documents under.
func DocExt(filename, mime string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return "." + strings.ToLower(filename[i+1:])
	}
	switch strings.ToLower(mime) {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".pdf"
	}
}
