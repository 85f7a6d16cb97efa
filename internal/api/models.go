package api

import (
	"fmt"
	"strings"
)

type Article struct {
	ID                   int64     `json:"id"`
	ContentTitle         string    `json:"content_title"`
	OGTitle              string    `json:"og_title"`
	OGDescription        string    `json:"og_description"`
	OGSiteName           string    `json:"og_site_name"`
	PublishDatetime      Timestamp `json:"publish_datetime"`
	DisplayDatetime      Timestamp `json:"display_datetime"`
	LastModifiedDatetime Timestamp `json:"last_modified_datetime"`
	CreateDatetime       Timestamp `json:"create_datetime"`
	ContentVertical      string    `json:"content_vertical"`
	ContentType          string    `json:"content_type"`
	ContentTier          string    `json:"content_tier"`
	PageURL              string    `json:"page_url"`
	Tags                 string    `json:"tags"`
	Authors              string    `json:"authors"`
	ArticleS3URL         string    `json:"article_s3_url"`
}

// DisplayTitle returns the best available human title for the article.
func (a *Article) DisplayTitle() string {
	if t := strings.TrimSpace(a.ContentTitle); t != "" {
		return t
	}
	if t := strings.TrimSpace(a.OGTitle); t != "" {
		return t
	}
	return fmt.Sprintf("#%d", a.ID)
}

func (a *Article) TagList() []string    { return splitList(a.Tags) }
func (a *Article) AuthorList() []string { return splitList(a.Authors) }

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type ArticleChunk struct {
	ID        int64  `json:"id"`
	ArticleID int64  `json:"article_id"`
	Text      string `json:"chunk_text"`
	TokenSize int    `json:"token_size"`
}

type ScoredArticle struct {
	Article  Article `json:"article"`
	Distance float64 `json:"distance"`
}

type ScoredChunk struct {
	Chunk    ArticleChunk `json:"chunk"`
	Distance float64      `json:"distance"`
}

// Page is one page of a paginated similarity search.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Range is the 1-indexed, inclusive span of results shown by a page.
type Range struct {
	Start int
	End   int
}

func (p *Page[T]) Range() Range {
	if p == nil || p.PageSize <= 0 || p.Page <= 0 || p.Total <= 0 {
		return Range{}
	}
	end := p.Page * p.PageSize
	if end > p.Total {
		end = p.Total
	}
	return Range{Start: (p.Page-1)*p.PageSize + 1, End: end}
}

func (p *Page[T]) HasNext() bool {
	return p != nil && p.Page*p.PageSize < p.Total
}

func (p *Page[T]) HasPrevious() bool {
	return p != nil && p.Page > 1
}

// validate enforces the page invariants the stores rely on.
func (p *Page[T]) validate() error {
	if p.Page < 1 || p.PageSize < 1 {
		return fmt.Errorf("page=%d page_size=%d out of range", p.Page, p.PageSize)
	}
	if p.Total < 0 {
		return fmt.Errorf("negative total %d", p.Total)
	}
	if len(p.Items) > p.PageSize {
		return fmt.Errorf("%d items exceed page_size %d", len(p.Items), p.PageSize)
	}
	if len(p.Items) > 0 && (p.Page-1)*p.PageSize >= p.Total {
		return fmt.Errorf("page %d lies beyond total %d", p.Page, p.Total)
	}
	return nil
}

type articleTextResponse struct {
	Text string `json:"text"`
}
