package genai

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cause classifies why a generation request produced no usable image.
type Cause string

const (
	// CauseSafetyBlocked marks requests refused by the service's safety
	// filters, either up front (prompt feedback) or mid-generation.
	CauseSafetyBlocked Cause = "safety_blocked"
	// CauseBadFinish marks candidates that stopped for a reason other than a
	// normal STOP before any image was produced.
	CauseBadFinish Cause = "bad_finish"
	// CauseTextOnly marks responses where the model answered in prose instead
	// of returning image data.
	CauseTextOnly Cause = "text_only"
	// CauseNoImage marks otherwise well-formed responses with no image and no
	// explanation.
	CauseNoImage Cause = "no_image"
)

// GenerationError is returned when the service responded successfully at the
// transport level but the response contains no usable image. Transport and
// decoding failures stay ordinary wrapped errors.
type GenerationError struct {
	Cause  Cause
	Reason string // block or finish reason as reported by the service
	Detail string // service-provided message or model text, if any
}

func (e *GenerationError) Error() string {
	switch e.Cause {
	case CauseSafetyBlocked:
		msg := "genai: request blocked by safety filters"
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
		if e.Detail != "" {
			msg += " (" + e.Detail + ")"
		}
		return msg
	case CauseBadFinish:
		return "genai: generation stopped unexpectedly: " + e.Reason
	case CauseTextOnly:
		return "genai: model returned text instead of an image: " + truncate(e.Detail, 200)
	default:
		return "genai: no image data in response"
	}
}

// Result is a successfully generated artifact. Text carries any commentary the
// model emitted alongside the image.
type Result struct {
	Data     []byte
	MIMEType string
	Text     string
}

// classifyResponse maps the heterogeneous generateContent response shape into
// a Result or a GenerationError. Precedence: a prompt-level block wins over
// everything, an image part wins over a bad finish reason, and a bad finish
// reason wins over a text-only fallback.
func classifyResponse(resp *geminiGenerateContentResponse) (*Result, error) {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, &GenerationError{
			Cause:  CauseSafetyBlocked,
			Reason: fb.BlockReason,
			Detail: fb.BlockReasonMessage,
		}
	}

	var finishReason string
	var texts []string
	var imageData []byte
	var imageMIME string
	// The model interleaves commentary before and after the image part, so the
	// whole candidate is scanned before deciding: first image wins, all text
	// parts are kept.
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" && imageData == nil {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("genai: decode inline data: %w", err)
				}
				imageData = data
				imageMIME = part.InlineData.MimeType
				if imageMIME == "" {
					imageMIME = "image/png"
				}
				continue
			}
			if t := strings.TrimSpace(part.Text); t != "" {
				texts = append(texts, t)
			}
		}
		if finishReason == "" {
			finishReason = candidate.FinishReason
		}
	}

	if imageData != nil {
		return &Result{
			Data:     imageData,
			MIMEType: imageMIME,
			Text:     strings.Join(texts, "\n"),
		}, nil
	}

	if finishReason != "" && finishReason != "STOP" {
		if isSafetyFinish(finishReason) {
			return nil, &GenerationError{Cause: CauseSafetyBlocked, Reason: finishReason}
		}
		return nil, &GenerationError{Cause: CauseBadFinish, Reason: finishReason}
	}
	if len(texts) > 0 {
		return nil, &GenerationError{Cause: CauseTextOnly, Detail: strings.Join(texts, "\n")}
	}
	return nil, &GenerationError{Cause: CauseNoImage}
}

func isSafetyFinish(reason string) bool {
	switch reason {
	case "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST":
		return true
	}
	return false
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
