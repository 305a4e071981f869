package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStaticLinksCodecRoundTrip(t *testing.T) {
	sub := uuid.New()
	links := []StaticLink{
		{ServiceID: uuid.New(), CreatedAt: time.Now().UTC().Truncate(time.Second)},
		{ServiceID: uuid.New(), SubServiceID: &sub, CreatedAt: time.Now().UTC().Truncate(time.Second)},
	}

	raw, err := EncodeStaticLinks(links)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeStaticLinks(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(links) {
		t.Fatalf("want %d links, got %d", len(links), len(decoded))
	}
	if decoded[0].SubServiceID != nil {
		t.Fatalf("service-wide link must keep nil sub-service")
	}
	if decoded[1].SubServiceID == nil || *decoded[1].SubServiceID != sub {
		t.Fatalf("sub-service id lost in round trip")
	}
}

func TestDecodeStaticLinksEmpty(t *testing.T) {
	links, err := DecodeStaticLinks(nil)
	if err != nil {
		t.Fatalf("decode nil: %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Fatalf("want empty list, got %v", links)
	}

	if _, err := DecodeStaticLinks([]byte("{not json")); !IsCode(err, CodeStorage) {
		t.Fatalf("corrupt column: want storage error, got %v", err)
	}
}

func TestAppendStaticLinkDedup(t *testing.T) {
	serviceID := uuid.New()
	sub := uuid.New()
	now := time.Now()

	links := AppendStaticLink(nil, serviceID, nil, now)
	links = AppendStaticLink(links, serviceID, nil, now)
	if len(links) != 1 {
		t.Fatalf("duplicate service-wide link appended, got %d", len(links))
	}

	// A scoped link is a different pair than the service-wide one.
	links = AppendStaticLink(links, serviceID, &sub, now)
	if len(links) != 2 {
		t.Fatalf("scoped link must not dedup against service-wide, got %d", len(links))
	}
	links = AppendStaticLink(links, serviceID, &sub, now)
	if len(links) != 2 {
		t.Fatalf("duplicate scoped link appended, got %d", len(links))
	}
}

func TestContainsStaticLink(t *testing.T) {
	serviceID := uuid.New()
	subA := uuid.New()
	subB := uuid.New()
	links := []StaticLink{
		{ServiceID: serviceID, SubServiceID: &subA},
	}

	if !ContainsStaticLink(links, serviceID, &subA) {
		t.Fatalf("expected match on same pair")
	}
	if ContainsStaticLink(links, serviceID, &subB) {
		t.Fatalf("different sub-service must not match")
	}
	if ContainsStaticLink(links, serviceID, nil) {
		t.Fatalf("nil sub-service must only match nil")
	}
	if ContainsStaticLink(links, uuid.New(), &subA) {
		t.Fatalf("different service must not match")
	}
}
