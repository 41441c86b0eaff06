package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	StorageClass    string
}

// ReportArchive keeps generated sales reports in an S3-compatible bucket so
// the admin can pull past documents without regenerating them.
type ReportArchive struct {
	bucket       string
	publicBase   string
	storageClass string
	client       *s3.Client
}

func NewReportArchive(ctx context.Context, cfg Config) (*ReportArchive, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("report archive endpoint is required")
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("report archive bucket is required")
	}

	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBase == "" {
		return nil, fmt.Errorf("report archive public base url is required")
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...any) (aws.Endpoint, error) {
		if service == s3.ServiceID {
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			strings.TrimSpace(cfg.AccessKeyID),
			strings.TrimSpace(cfg.SecretAccessKey),
			"",
		)),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// S3-compatible stores generally require path-style addressing.
		o.UsePathStyle = true
	})

	return &ReportArchive{
		bucket:       strings.TrimSpace(cfg.Bucket),
		publicBase:   publicBase,
		storageClass: strings.TrimSpace(cfg.StorageClass),
		client:       client,
	}, nil
}

func (a *ReportArchive) PublicURL(key string) string {
	return a.publicBase + "/" + strings.TrimLeft(key, "/")
}

// StoreHTML archives a generated report document under a dated key and
// returns its public URL.
func (a *ReportArchive) StoreHTML(ctx context.Context, generatedAt time.Time, document string) (string, error) {
	key := archiveKey(generatedAt, "html")
	return a.put(ctx, key, []byte(document), "text/html; charset=utf-8")
}

func (a *ReportArchive) StorePDF(ctx context.Context, generatedAt time.Time, payload []byte) (string, error) {
	key := archiveKey(generatedAt, "pdf")
	return a.put(ctx, key, payload, "application/pdf")
}

func archiveKey(generatedAt time.Time, ext string) string {
	return fmt.Sprintf("reports/sales/%s/report-%s.%s",
		generatedAt.Format("2006/01"),
		generatedAt.Format("2006-01-02T15-04-05"),
		ext,
	)
}

func (a *ReportArchive) put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(a.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("private, max-age=0"),
	}
	if sc := parseStorageClass(a.storageClass); sc != nil {
		input.StorageClass = *sc
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return a.PublicURL(key), nil
}

// ListKeys returns the archived report keys under prefix, newest first.
// Keys embed the generation timestamp, so lexical order is chronological.
func (a *ReportArchive) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	pager := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(strings.TrimLeft(prefix, "/")),
	})

	var keys []string
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

func parseStorageClass(v string) *types.StorageClass {
	v = strings.TrimSpace(strings.ToUpper(v))
	if v == "" {
		return nil
	}
	sc := types.StorageClass(v)
	return &sc
}
