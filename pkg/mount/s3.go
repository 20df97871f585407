package mount

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

// ObjectPutter is the part of the S3 API the S3 mount uses.
// *s3.Client implements it.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config locates the bucket pages are published to.
type S3Config struct {
	Bucket    string
	Prefix    string // key prefix, e.g. "site/"
	Region    string
	Endpoint  string // custom endpoint for S3-compatible stores
	PathStyle bool
}

// NewS3Client creates an S3 client from cfg. Credentials are read from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
				if id == "" || secret == "" {
					return aws.Credentials{}, fmt.Errorf("mount: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
				}
				return aws.Credentials{
					AccessKeyID:     id,
					SecretAccessKey: secret,
					SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
					Source:          "environment",
				}, nil
			})),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// S3 publishes each target as an HTML object <prefix><target>.html.
type S3 struct {
	client ObjectPutter
	cfg    S3Config
	opts   Options
}

// NewS3 creates an S3 mount point.
func NewS3(client ObjectPutter, cfg S3Config, opts Options) *S3 {
	return &S3{client: client, cfg: cfg, opts: opts.withDefaults("mount.s3")}
}

// Key returns the object key for target.
func (m *S3) Key(target string) string {
	return path.Join(m.cfg.Prefix, strings.TrimPrefix(target, "/")) + ".html"
}

// Mount implements Mount. Objects are overwritten; the content hash is
// stored in the object metadata.
func (m *S3) Mount(ctx context.Context, tree *vdom.VNode, target string) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("mount: s3 bucket not configured")
	}
	page, err := renderPage(m.opts.Renderer, tree, target)
	if err != nil {
		return err
	}
	doc, err := Document(m.opts.Renderer, page, render.PageData{Title: m.opts.Title})
	if err != nil {
		return err
	}

	key := m.Key(target)
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(doc),
		ContentLength: aws.Int64(int64(len(doc))),
		ContentType:   aws.String("text/html; charset=utf-8"),
		CacheControl:  aws.String("no-cache"),
		Metadata: map[string]string{
			"proptree-etag":   strings.Trim(page.ETag, `"`),
			"proptree-target": target,
		},
	})
	if err != nil {
		return fmt.Errorf("mount %s: put s3://%s/%s: %w", target, m.cfg.Bucket, key, err)
	}

	m.opts.Logger.InfoContext(ctx, "published page", "target", target, "bucket", m.cfg.Bucket, "key", key)
	return nil
}
