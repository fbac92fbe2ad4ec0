package journal

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJournalDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty text", text: "", want: []string{}},
		{name: "no dates", text: "The chamber was sealed.", want: []string{}},
		{name: "single date", text: "Arrived 03/15/2024.", want: []string{"03/15/2024"}},
		{name: "whole text is a date", text: "12/31/1999", want: []string{"12/31/1999"}},
		{name: "duplicates kept in order", text: "01/02/2020, 05/06/2021 then 01/02/2020", want: []string{"01/02/2020", "05/06/2021", "01/02/2020"}},
		{name: "day 31 in any month", text: "02/31/2000 and 04/31/1850", want: []string{"02/31/2000", "04/31/1850"}},
		{name: "day 30 in february", text: "02/30/2001", want: []string{"02/30/2001"}},
		{name: "year bounds", text: "01/01/1000 12/31/2999", want: []string{"01/01/1000", "12/31/2999"}},
		{name: "month 00", text: "00/10/2020", want: []string{}},
		{name: "month 13", text: "13/10/2020", want: []string{}},
		{name: "day 00", text: "10/00/2020", want: []string{}},
		{name: "day 32", text: "10/32/2020", want: []string{}},
		{name: "year 0999", text: "10/10/0999", want: []string{}},
		{name: "year 3000", text: "10/10/3000", want: []string{}},
		{name: "single digit fields", text: "1/2/2020", want: []string{}},
		{name: "leading digit glued", text: "101/02/2020", want: []string{}},
		{name: "trailing digit glued", text: "01/02/20201", want: []string{}},
		{name: "leading letter glued", text: "x01/02/2020", want: []string{}},
		{name: "trailing underscore glued", text: "01/02/2020_a", want: []string{}},
		{name: "non-ascii letter glued", text: "é01/02/2020", want: []string{}},
		{name: "punctuation is a boundary", text: "(01/02/2020)", want: []string{"01/02/2020"}},
		{name: "slash is a boundary", text: "12/12/12/2020", want: []string{"12/12/2020"}},
		{name: "newline separated", text: "a\n07/04/1776\nb", want: []string{"07/04/1776"}},
		{name: "other separators rejected", text: "01-02-2020 01.02.2020", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJournalDates(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSecretCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty text", text: "", want: []string{}},
		{name: "exact code", text: "AZMAR-007", want: []string{"AZMAR-007"}},
		{name: "two digits", text: "AZMAR-07", want: []string{}},
		{name: "four digits keep first three", text: "AZMAR-0071", want: []string{"AZMAR-007"}},
		{name: "mid token", text: "keyAZMAR-123x", want: []string{"AZMAR-123"}},
		{name: "duplicates kept", text: "AZMAR-001 ... AZMAR-001", want: []string{"AZMAR-001", "AZMAR-001"}},
		{name: "case sensitive", text: "azmar-123 Azmar-456", want: []string{}},
		{name: "adjacent codes", text: "AZMAR-111AZMAR-222", want: []string{"AZMAR-111", "AZMAR-222"}},
		{name: "wrong separator", text: "AZMAR_123 AZMAR 123", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSecretCodes(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMixedJournal(t *testing.T) {
	text := "Visited on 03/15/2024 and again 13/40/2024, see AZMAR-042 and AZMAR-99."

	got := Extract(text)
	assert.Equal(t, []string{"03/15/2024"}, got.Dates)
	assert.Equal(t, []string{"AZMAR-042"}, got.Codes)
}

func TestFindOffsets(t *testing.T) {
	text := "é 01/02/2020 AZMAR-555"

	dates := FindDates(text)
	require.Len(t, dates, 1)
	assert.Equal(t, Token{Value: "01/02/2020", Offset: 3}, dates[0])

	codes := FindSecretCodes(text)
	require.Len(t, codes, 1)
	assert.Equal(t, Token{Value: "AZMAR-555", Offset: 14}, codes[0])
}

func TestEmbeddedValidDatesAreFound(t *testing.T) {
	var sb strings.Builder
	var want []string
	for m := 1; m <= 12; m++ {
		for _, d := range []int{1, 15, 29, 30, 31} {
			date := fmt.Sprintf("%02d/%02d/%d", m, d, 1000+m*150+d)
			want = append(want, date)
			fmt.Fprintf(&sb, "entry %d: %s; ", m, date)
		}
	}

	assert.Equal(t, want, ExtractJournalDates(sb.String()))
}

func TestConcurrentExtraction(t *testing.T) {
	text := strings.Repeat("On 11/11/1911 found AZMAR-321. ", 200)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Extract(text)
			assert.Len(t, got.Dates, 200)
			assert.Len(t, got.Codes, 200)
		}()
	}
	wg.Wait()
}
