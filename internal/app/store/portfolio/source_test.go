package portfolio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestLocalSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "A.parquet"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.parquet"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := NewLocalSource(dir)
	ctx := context.Background()

	if err := src.Check(ctx); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	names, err := src.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 1 || names[0] != "A.parquet" {
		t.Errorf("Names() = %v, want [A.parquet]", names)
	}

	b, err := src.ReadFile(ctx, "A.parquet")
	if err != nil || string(b) != "a" {
		t.Errorf("ReadFile() = %q, %v, want a", b, err)
	}
	if _, err := src.ReadFile(ctx, "B.parquet"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := src.ReadFile(ctx, "../A.parquet"); err == nil {
		t.Error("ReadFile(../A.parquet) error = nil, want error")
	}
}

func TestLocalSource_Missing(t *testing.T) {
	src := NewLocalSource(filepath.Join(t.TempDir(), "nope"))

	var nf *models.NotFoundError
	if err := src.Check(context.Background()); !errors.As(err, &nf) || nf.Kind != models.NotFoundStorage {
		t.Errorf("Check() error = %v, want storage NotFoundError", err)
	}
}

// fakeS3 serves objects from a map and pages listings two keys at a time.
type fakeS3 struct {
	bucket  string
	objects map[string][]byte
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(in.Bucket) != f.bucket {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if aws.ToString(in.Bucket) != f.bucket {
		return nil, &types.NoSuchBucket{}
	}
	prefix := aws.ToString(in.Prefix)
	var keys []string
	for k := range f.objects {
		rest, ok := strings.CutPrefix(k, prefix)
		if ok && !strings.Contains(rest, "/") && k > aws.ToString(in.StartAfter) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{}
	if len(keys) > 2 {
		keys = keys[:2]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[1])
	}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

// pagingFake maps continuation tokens onto StartAfter so the paginator's
// token handling is exercised.
type pagingFake struct{ *fakeS3 }

func (p pagingFake) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if in.ContinuationToken != nil {
		in.StartAfter = in.ContinuationToken
	}
	return p.fakeS3.ListObjectsV2(ctx, in, opts...)
}

func TestS3Source(t *testing.T) {
	fake := pagingFake{&fakeS3{
		bucket: "books",
		objects: map[string][]byte{
			"parquet/A.parquet":       []byte("a"),
			"parquet/B.parquet":       []byte("b"),
			"parquet/SUMMARY.parquet": []byte("s"),
			"parquet/old/C.parquet":   []byte("c"),
			"other/D.parquet":         []byte("d"),
		},
	}}
	src := newS3Source(fake, "books", "/parquet/")
	ctx := context.Background()

	if err := src.Check(ctx); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	names, err := src.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	want := []string{"A.parquet", "B.parquet", "SUMMARY.parquet"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
	if got := IDs(names); len(got) != 2 {
		t.Errorf("IDs() = %v, want [A B]", got)
	}

	b, err := src.ReadFile(ctx, "B.parquet")
	if err != nil || string(b) != "b" {
		t.Errorf("ReadFile() = %q, %v, want b", b, err)
	}
	if _, err := src.ReadFile(ctx, "Z.parquet"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
	if got := src.Location(); got != "s3://books/parquet/" {
		t.Errorf("Location() = %q", got)
	}
}

func TestS3Source_MissingBucket(t *testing.T) {
	src := newS3Source(&fakeS3{bucket: "books"}, "gone", "")
	ctx := context.Background()

	var nf *models.NotFoundError
	if err := src.Check(ctx); !errors.As(err, &nf) || nf.Kind != models.NotFoundStorage {
		t.Errorf("Check() error = %v, want storage NotFoundError", err)
	}
	if _, err := src.Names(ctx); !errors.As(err, &nf) {
		t.Errorf("Names() error = %v, want NotFoundError", err)
	}
}
