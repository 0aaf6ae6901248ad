package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-analytics/models"
	"video-analytics/utils"
)

func newTestParser() *Parser {
	return NewParser(utils.NewNopLogger())
}

func TestParseChineseHeaders(t *testing.T) {
	rows := []models.RawRow{{
		"日期":    "2024年3月5日",
		"律师名称":  " 张律师 ",
		"账号名称":  "法律小课堂",
		"累计粉丝量": 12000.0,
		"视频类型":  "普法",
		"视频标题":  "离婚财产怎么分",
		"视频播放量": 5000.0,
		"点赞量":   300.0,
		"评论量":   40.0,
		"收藏量":   25.0,
		"转发量":   10.0,
		"粉丝净增量": 55.0,
		"粉赞比":   0.125,
		"视频完播率": 0.4567,
	}}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "2024-03-05", r.DateKey)
	assert.Equal(t, "张律师", r.Lawyer)
	assert.Equal(t, "法律小课堂", r.Account)
	assert.Equal(t, "普法", r.VideoType)
	assert.Equal(t, "离婚财产怎么分", r.Title)
	assert.Equal(t, int64(12000), r.Fans)
	assert.Equal(t, int64(5000), r.Views)
	assert.Equal(t, int64(300), r.Likes)
	assert.Equal(t, int64(40), r.Comments)
	assert.Equal(t, int64(25), r.Favorites)
	assert.Equal(t, int64(10), r.Shares)
	assert.Equal(t, int64(55), r.NetFans)
	assert.Equal(t, "12.50%", r.FanLikeRatio)
	assert.Equal(t, "45.67%", r.CompletionRate)
	assert.InDelta(t, 7.0, r.InteractionRate, 1e-9)
}

func TestParseEnglishHeadersAndAliases(t *testing.T) {
	rows := []models.RawRow{{
		"Date":             "2024-01-02",
		"Lawyer Name":      "Li",
		"Views":            "1,200",
		"Likes":            12,
		"Net Fan Increase": -5.0,
		"Recommendations":  50.0,
		"Completion Rate":  "38%",
	}, {
		"日期":   "2024-01-03",
		"粉丝净增": 7.0,
		"推荐量":  "8",
	}}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Li", records[0].Lawyer)
	assert.Equal(t, int64(1200), records[0].Views)
	assert.Equal(t, int64(12), records[0].Likes)
	assert.Equal(t, int64(-5), records[0].NetFans)
	assert.Equal(t, int64(50), records[0].Recommendations)
	assert.Equal(t, "38%", records[0].CompletionRate)

	assert.Equal(t, int64(7), records[1].NetFans)
	assert.Equal(t, int64(8), records[1].Recommendations)
}

func TestParseHeaderMatchingIsLenient(t *testing.T) {
	rows := []models.RawRow{{
		" DATE ":             "2024-01-02",
		"Ｖｉｅｗｓ":              100.0,
		"completion   rate": 0.5,
	}}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(100), records[0].Views)
	assert.Equal(t, "50.00%", records[0].CompletionRate)
}

func TestParseCollidingHeadersAreDeterministic(t *testing.T) {
	p := newTestParser()

	exact := models.RawRow{"Date": "2024-01-01", "Views": 10.0, "views": 20.0, " VIEWS ": 30.0}
	folded := models.RawRow{"Date": "2024-01-01", "views": 20.0, " VIEWS ": 30.0}

	for i := 0; i < 100; i++ {
		records, err := p.Parse([]models.RawRow{exact, folded})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, int64(10), records[0].Views, "exact header wins")
		assert.Equal(t, int64(30), records[1].Views, "first folded header in sorted order wins")
	}
}

func TestParseBlankAliasFallsThrough(t *testing.T) {
	rows := []models.RawRow{{
		"日期":    "2024-01-02",
		"视频播放量": "  ",
		"Views": 42.0,
	}}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(42), records[0].Views)
}

func TestParseDefaults(t *testing.T) {
	records, err := newTestParser().Parse([]models.RawRow{{"日期": 45658.0, "视频播放量": "n/a"}})
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "2025-01-01", r.DateKey)
	assert.Empty(t, r.Title)
	assert.Zero(t, r.Views)
	assert.Zero(t, r.Fans)
	assert.Equal(t, "0%", r.CompletionRate)
	assert.Equal(t, "0%", r.FanLikeRatio)
	assert.Zero(t, r.InteractionRate)
}

func TestParseDropsUnparseableDates(t *testing.T) {
	rows := []models.RawRow{
		{"日期": "2024-01-01", "视频播放量": 1.0},
		{"日期": "not-a-date", "视频播放量": 2.0},
		{"视频播放量": 3.0},
		{"日期": "2024-01-03", "视频播放量": 4.0},
	}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, len(rows)-2)
	assert.Equal(t, int64(1), records[0].Views)
	assert.Equal(t, int64(4), records[1].Views)
}

func TestParseNilAndEmpty(t *testing.T) {
	_, err := newTestParser().Parse(nil)
	assert.ErrorIs(t, err, ErrNilRows)

	records, err := newTestParser().Parse([]models.RawRow{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCustomAliases(t *testing.T) {
	p := NewParserWithAliases(utils.NewNopLogger(), map[Field][]string{
		FieldDate:  {"Publish Day"},
		FieldViews: {"Plays"},
	})
	records, err := p.Parse([]models.RawRow{{"publish day": "2024-05-01", "PLAYS": 9.0, "日期": "2020-01-01"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-05-01", records[0].DateKey)
	assert.Equal(t, int64(9), records[0].Views)
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0.5, "50.00%"},
		{0.1234, "12.34%"},
		{1, "100.00%"},
		// Numeric cells are always read as fractions, so a literal 50 is 5000%.
		{50.0, "5000.00%"},
		{"45.5%", "45.5%"},
		{"", "0%"},
		{nil, "0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercentage(tt.in), "input %v", tt.in)
	}
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 45.5, ParsePercent("45.5%"))
	assert.Equal(t, 12.0, ParsePercent(" １２% "))
	assert.Equal(t, -3.0, ParsePercent("-3%"))
	assert.Zero(t, ParsePercent("abc"))
	assert.Zero(t, ParsePercent(""))
}

func TestInteractionRate(t *testing.T) {
	assert.InDelta(t, 20.0, InteractionRate(100, 10, 5, 5), 1e-9)
	assert.Zero(t, InteractionRate(0, 10, 5, 5))
}

func TestEndToEndTwoRecordsOneDay(t *testing.T) {
	rows := []models.RawRow{
		{"日期": "2024-01-01", "视频播放量": 100.0, "点赞量": 10.0, "评论量": 5.0, "转发量": 5.0},
		{"日期": "2024-01-01", "视频播放量": 200.0, "点赞量": 20.0, "评论量": 0.0, "转发量": 0.0},
	}

	records, err := newTestParser().Parse(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 20.0, records[0].InteractionRate, 1e-9)
	assert.InDelta(t, 10.0, records[1].InteractionRate, 1e-9)

	buckets := Aggregate(records, rangeOf(t, "2024-01-01", "2024-01-01"), models.Daily)
	require.Len(t, buckets, 1)
	b := buckets[0]
	assert.Equal(t, "2024-01-01", b.Label)
	assert.Equal(t, int64(300), b.Views)
	assert.Equal(t, int64(30), b.Likes)
	assert.Equal(t, int64(5), b.Comments)
	assert.Equal(t, int64(5), b.Shares)
	assert.Equal(t, int64(40), b.Interactions)
	assert.Equal(t, 15.0, b.InteractionRate)
}
