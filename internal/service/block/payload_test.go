package block

import (
	"errors"
	"testing"
)

func TestUnmarshalLinkPayloadSocialPrefixes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantURL string
	}{
		{
			name:    "bare telegram handle gets prefix",
			payload: `{"title":"Chat","url":"mychannel","social":"telegram"}`,
			wantURL: "https://t.me/mychannel",
		},
		{
			name:    "bare twitter handle maps to x.com",
			payload: `{"title":"Follow","url":"someone","social":"twitter"}`,
			wantURL: "https://x.com/someone",
		},
		{
			name:    "full URL passes through even with social set",
			payload: `{"title":"Chat","url":"https://t.me/already","social":"telegram"}`,
			wantURL: "https://t.me/already",
		},
		{
			// A bare domain is still scheme-less, so the social prefix
			// wins over guessing it is a URL.
			name:    "bare domain with social gets prefix",
			payload: `{"title":"Chat","url":"example.com","social":"telegram"}`,
			wantURL: "https://t.me/example.com",
		},
		{
			name:    "no social defaults the scheme",
			payload: `{"title":"Site","url":"example.com"}`,
			wantURL: "https://example.com",
		},
		{
			name:    "unknown social defaults the scheme",
			payload: `{"title":"Site","url":"example.com","social":"myspace"}`,
			wantURL: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := UnmarshalPayload(KindLink, []byte(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			lp, ok := p.(LinkPayload)
			if !ok {
				t.Fatalf("expected LinkPayload, got %T", p)
			}
			if lp.URL != tt.wantURL {
				t.Errorf("expected url %q, got %q", tt.wantURL, lp.URL)
			}
		})
	}
}

func TestUnmarshalPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		payload string
	}{
		{"link without title", KindLink, `{"url":"https://example.com"}`},
		{"link without url", KindLink, `{"title":"x"}`},
		{"header without text", KindHeader, `{"text":"  "}`},
		{"image without url", KindImage, `{"caption":"nice"}`},
		{"faq without items", KindFAQ, `{"items":[]}`},
		{"faq item without answer", KindFAQ, `{"items":[{"question":"why?"}]}`},
		{"youtube without url", KindYouTube, `{"title":"clip"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalPayload(tt.kind, []byte(tt.payload))
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestUnmarshalPayloadUnknownKind(t *testing.T) {
	_, err := UnmarshalPayload(Kind("carousel"), []byte(`{}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestUnmarshalMediaPayloadCarriesKind(t *testing.T) {
	for _, kind := range []Kind{KindYouTube, KindSpotify, KindSoundCloud, KindTikTok} {
		p, err := UnmarshalPayload(kind, []byte(`{"url":"https://example.com/x"}`))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if p.Kind() != kind {
			t.Errorf("expected kind %s, got %s", kind, p.Kind())
		}
	}
}

func TestMarshalPayloadRoundTrip(t *testing.T) {
	original, err := UnmarshalPayload(KindFAQ,
		[]byte(`{"items":[{"question":"Shipping?","answer":"Worldwide."}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := MarshalPayload(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := UnmarshalPayload(KindFAQ, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fp, ok := decoded.(FAQPayload)
	if !ok {
		t.Fatalf("expected FAQPayload, got %T", decoded)
	}
	if len(fp.Items) != 1 || fp.Items[0].Answer != "Worldwide." {
		t.Errorf("round trip lost data: %+v", fp)
	}
}
