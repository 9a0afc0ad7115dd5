package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"kwmap/internal/record"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func keywords() []record.Keyword {
	return []record.Keyword{
		{Key: "가방", Keyword: "가방", Category1: "패션", SearchVolume: 1000, GrowthRate: 11.11},
		{Key: "지갑", Keyword: "지갑", Category1: "패션", SearchVolume: 500},
		{Key: "텐트", Keyword: "텐트", Category1: "캠핑", SearchVolume: 1200},
	}
}

func keys(items []record.Keyword) []string {
	return record.Keys(items)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"substring", "가", []string{"가방"}},
		{"shared field", "패션", []string{"가방", "지갑"}},
		{"number as text", "1000", []string{"가방"}},
		{"decimal", "11.11", []string{"가방"}},
		{"regex alternation", "텐트|지갑", []string{"지갑", "텐트"}},
		{"regex anchor", "^12", []string{"텐트"}},
		{"invalid regex as literal", "가방(", nil},
		{"no match", "없음", nil},
		{"case sensitive", "ABC", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(keywords(), tt.term)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestFilter_InvalidRegexMatchesLiteral(t *testing.T) {
	items := []record.Product{{Key: "P-1", Name: "가방(대)"}, {Key: "P-2", Name: "가방"}}
	got := Filter(items, "가방(")
	require.Len(t, got, 1)
	assert.Equal(t, "P-1", got[0].Key)
	assert.False(t, IsPattern("가방("))
	assert.True(t, IsPattern("가방.*"))
}

func TestFilter_EmptyTermReturnsSameSlice(t *testing.T) {
	items := keywords()
	got := Filter(items, "")
	require.Len(t, got, len(items))
	assert.Same(t, &items[0], &got[0])
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := keywords()
	_ = Filter(items, "텐트")
	assert.Equal(t, keywords(), items)
}

func receive(t *testing.T, l *Live[record.Keyword]) Result[record.Keyword] {
	t.Helper()
	select {
	case res := <-l.Results():
		return res
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
		return Result[record.Keyword]{}
	}
}

func TestLive_DebouncesKeystrokes(t *testing.T) {
	l := NewLive[record.Keyword](30 * time.Millisecond)
	defer l.Close()

	l.SetItems(keywords())
	for _, term := range []string{"패", "패션", "캠", "캠핑"} {
		l.SetTerm(term)
		time.Sleep(5 * time.Millisecond)
	}

	res := receive(t, l)
	assert.Equal(t, "캠핑", res.Term)
	assert.Equal(t, []string{"텐트"}, keys(res.Items))
	assert.Equal(t, uint64(1), res.Seq)

	select {
	case extra := <-l.Results():
		t.Fatalf("unexpected extra result %+v", extra)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLive_NewResultReplacesUnread(t *testing.T) {
	l := NewLive[record.Keyword](time.Hour)
	defer l.Close()

	l.SetItems(keywords())
	l.SetTerm("가방")
	l.Refresh()
	l.SetTerm("지갑")
	l.Refresh()

	res := receive(t, l)
	assert.Equal(t, "지갑", res.Term)
	assert.Equal(t, uint64(2), res.Seq)
	assert.Equal(t, "지갑", l.Term())
}

func TestLive_DataReplacementReschedules(t *testing.T) {
	l := NewLive[record.Keyword](20 * time.Millisecond)
	defer l.Close()

	l.SetTerm("패션")
	l.SetItems(keywords())
	res := receive(t, l)
	assert.Equal(t, []string{"가방", "지갑"}, keys(res.Items))
	assert.Equal(t, uint64(1), res.Gen)

	l.SetItems(keywords()[2:])
	assert.Equal(t, uint64(2), l.Gen())
	res = receive(t, l)
	assert.Empty(t, res.Items)
	assert.Equal(t, l.Gen(), res.Gen)
}

func TestLive_ResultCarriesGeneration(t *testing.T) {
	l := NewLive[record.Keyword](time.Hour)
	defer l.Close()

	l.SetItems(keywords())
	l.SetTerm("패션")
	l.Refresh()
	old := receive(t, l)

	// The pass above was taken before the collection changed.
	l.SetItems(nil)
	assert.Less(t, old.Gen, l.Gen())
	assert.Equal(t, []string{"가방", "지갑"}, keys(old.Items))
}

func TestLive_CloseStopsPending(t *testing.T) {
	l := NewLive[record.Keyword](20 * time.Millisecond)
	l.SetTerm("가")
	l.Close()
	l.Close()

	_, ok := <-l.Results()
	assert.False(t, ok)
	time.Sleep(40 * time.Millisecond)
}
