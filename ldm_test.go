// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import "testing"

func TestLDM_FindsDistantRepeatedSegment(t *testing.T) {
	segment := make([]byte, 100)
	for i := range segment {
		segment[i] = byte('A' + i%26)
	}
	filler := make([]byte, 40)
	for i := range filler {
		filler[i] = byte('z' - i%26)
	}

	var src []byte
	src = append(src, filler...)    // 0..40
	src = append(src, segment...)   // 40..140 (first occurrence)
	src = append(src, filler...)    // 140..180
	src = append(src, segment...)   // 180..280 (second occurrence)

	m := newLDMMatcher(src, 0)
	secondStart := uint32(180)
	cand := m.search(secondStart, uint32(len(src))-secondStart)
	if cand.length < ldmMinMatchLength {
		t.Fatalf("expected a long-distance match of at least %d bytes, got %d", ldmMinMatchLength, cand.length)
	}
	if cand.offsetValue != 140 {
		t.Fatalf("offset = %d, want 140 (distance back to the first occurrence)", cand.offsetValue)
	}
}

func TestLDM_NoMatchBelowMinLength(t *testing.T) {
	// A short repeated snippet, well under ldmMinMatchLength, should never
	// surface as a long-distance match even though it does repeat.
	snippet := []byte("short-repeat")
	filler := make([]byte, 200)
	for i := range filler {
		filler[i] = byte(i % 251)
	}

	var src []byte
	src = append(src, snippet...)
	src = append(src, filler...)
	src = append(src, snippet...)

	m := newLDMMatcher(src, 0)
	secondStart := uint32(len(snippet) + len(filler))
	cand := m.search(secondStart, uint32(len(src))-secondStart)
	if cand.length != 0 {
		t.Fatalf("expected no match for a sub-minimum-length repeat, got length %d", cand.length)
	}
}

func TestLDM_BaseOffsetsPositionsIntoFrameSpace(t *testing.T) {
	segment := make([]byte, 80)
	for i := range segment {
		segment[i] = byte(i % 250)
	}
	var src []byte
	src = append(src, segment...)
	src = append(src, segment...)

	const base = uint32(1000) // as if a dictionary of 1000 bytes preceded src
	m := newLDMMatcher(src, base)

	cand := m.search(base+uint32(len(segment)), uint32(len(segment)))
	if cand.length < ldmMinMatchLength {
		t.Fatalf("expected a match of at least %d bytes, got %d", ldmMinMatchLength, cand.length)
	}
	if cand.offsetValue != uint32(len(segment)) {
		t.Fatalf("offset = %d, want %d", cand.offsetValue, len(segment))
	}
}
