package common

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; ok {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
}

func TestKey(t *testing.T) {
	cases := []struct {
		prefix, name, want string
	}{
		{"", "a.mp4", "a.mp4"},
		{"videos", "a.mp4", "videos/a.mp4"},
		{"/videos/2026/", "a.mp4", "videos/2026/a.mp4"},
	}
	for _, c := range cases {
		if got := NewS3WithClient(nil, "b", c.prefix).Key(c.name); got != c.want {
			t.Fatalf("Key(%q, %q) = %q; want %q", c.prefix, c.name, got, c.want)
		}
	}
}

func TestPutFile(t *testing.T) {
	api := &fakeS3{objects: map[string]string{}}
	store := NewS3WithClient(api, "results", "videos")

	local := filepath.Join(t.TempDir(), "My story.mp4")
	if err := os.WriteFile(local, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	key, err := store.PutFile(context.Background(), local, "video/mp4")
	if err != nil {
		t.Fatalf("PutFile error: %v", err)
	}
	if key != "videos/My story.mp4" || api.objects[key] != "video" {
		t.Fatalf("key=%q objects=%v", key, api.objects)
	}

	// a re-render replaces the stored object
	api.objects[key] = "stale"
	if err := os.WriteFile(local, []byte("re-rendered"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.PutFile(context.Background(), local, "video/mp4"); err != nil {
		t.Fatalf("PutFile error: %v", err)
	}
	if api.objects[key] != "re-rendered" {
		t.Fatalf("object = %q; want the new upload", api.objects[key])
	}
}
