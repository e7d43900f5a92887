// Package search mirrors user profiles into Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
)

type ProfileIndexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewProfileIndexer(es *elasticsearch.Client, index string) *ProfileIndexer {
	return &ProfileIndexer{ES: es, Index: index}
}

type profileDoc struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// IndexProfile upserts the profile document keyed by user id.
// Password hashes and phone numbers are never indexed.
func (p *ProfileIndexer) IndexProfile(ctx context.Context, u *entity.User) error {
	if p == nil || p.ES == nil || p.Index == "" {
		return nil
	}
	b, err := json.Marshal(profileDoc{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{Index: p.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, p.ES)
	if err != nil {
		return fmt.Errorf("es index %s: %w", u.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", u.ID, res.Status())
	}
	return nil
}
