package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"video-analytics/models"
	"video-analytics/utils"
)

// ErrNilRows is returned when Parse is handed a nil row collection.
var ErrNilRows = errors.New("parser: nil row collection")

// Field identifies a canonical record field.
type Field string

const (
	FieldDate            Field = "date"
	FieldLawyer          Field = "lawyer"
	FieldAccount         Field = "account"
	FieldFans            Field = "fans"
	FieldVideoType       Field = "type"
	FieldTitle           Field = "title"
	FieldViews           Field = "views"
	FieldLikes           Field = "likes"
	FieldComments        Field = "comments"
	FieldFavorites       Field = "favorites"
	FieldShares          Field = "shares"
	FieldNetFans         Field = "netFans"
	FieldFanLikeRatio    Field = "fanLikeRatio"
	FieldCompletionRate  Field = "completionRate"
	FieldRecommendations Field = "recommendations"
)

// DefaultAliases lists, per field, the accepted column headers in lookup order.
var DefaultAliases = map[Field][]string{
	FieldDate:            {"日期", "Date"},
	FieldLawyer:          {"律师名称", "Lawyer Name"},
	FieldAccount:         {"账号名称", "Account Name"},
	FieldFans:            {"累计粉丝量", "Total Fans"},
	FieldVideoType:       {"视频类型", "Video Type"},
	FieldTitle:           {"视频标题", "Video Title"},
	FieldViews:           {"视频播放量", "Views"},
	FieldLikes:           {"点赞量", "Likes"},
	FieldComments:        {"评论量", "Comments"},
	FieldFavorites:       {"收藏量", "Favorites"},
	FieldShares:          {"转发量", "Shares"},
	FieldNetFans:         {"粉丝净增量", "粉丝净增", "Net Fan Increase"},
	FieldFanLikeRatio:    {"粉赞比", "Fan/Like Ratio"},
	FieldCompletionRate:  {"视频完播率", "Completion Rate"},
	FieldRecommendations: {"推荐量", "Recommendations"},
}

// Parser maps raw spreadsheet rows to canonical records.
type Parser struct {
	logger  *utils.Logger
	aliases map[Field][]alias
}

type alias struct {
	name   string
	folded string
}

// NewParser creates a Parser using DefaultAliases.
func NewParser(logger *utils.Logger) *Parser {
	return NewParserWithAliases(logger, DefaultAliases)
}

// NewParserWithAliases creates a Parser with a custom alias table.
// An exact header match wins; otherwise matching ignores surrounding space,
// letter case and full-width forms.
func NewParserWithAliases(logger *utils.Logger, aliases map[Field][]string) *Parser {
	table := make(map[Field][]alias, len(aliases))
	for field, names := range aliases {
		for _, name := range names {
			table[field] = append(table[field], alias{name: name, folded: normaliseHeader(name)})
		}
	}
	return &Parser{logger: logger, aliases: table}
}

// Parse converts rows to records. Rows whose date cannot be resolved are dropped.
func (p *Parser) Parse(rows []models.RawRow) ([]*models.Record, error) {
	if rows == nil {
		return nil, ErrNilRows
	}

	result := make([]*models.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := p.parseRow(row)
		if err != nil {
			p.logger.Debug("[parser] Dropping row %d: %v", i+1, err)
			continue
		}
		result = append(result, rec)
	}

	p.logger.Info("[parser] Parsed %d → %d records (dropped %d)",
		len(rows), len(result), len(rows)-len(result))
	return result, nil
}

func (p *Parser) parseRow(row models.RawRow) (*models.Record, error) {
	// Headers that fold to the same name are tried in sorted order.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	folded := make([]string, len(keys))
	for i, k := range keys {
		folded[i] = normaliseHeader(k)
	}

	get := func(f Field) any {
		for _, a := range p.aliases[f] {
			if v, ok := row[a.name]; ok && !isBlank(v) {
				return v
			}
			for i, k := range keys {
				if folded[i] == a.folded && !isBlank(row[k]) {
					return row[k]
				}
			}
		}
		return nil
	}

	date, err := NormalizeDate(get(FieldDate))
	if err != nil {
		return nil, err
	}

	rec := &models.Record{
		Date:            date,
		DateKey:         date.Format(DateKeyLayout),
		Lawyer:          toText(get(FieldLawyer)),
		Account:         toText(get(FieldAccount)),
		VideoType:       toText(get(FieldVideoType)),
		Title:           toText(get(FieldTitle)),
		Views:           toCount(get(FieldViews)),
		Likes:           toCount(get(FieldLikes)),
		Comments:        toCount(get(FieldComments)),
		Favorites:       toCount(get(FieldFavorites)),
		Shares:          toCount(get(FieldShares)),
		NetFans:         toCount(get(FieldNetFans)),
		Fans:            toCount(get(FieldFans)),
		Recommendations: toCount(get(FieldRecommendations)),
		FanLikeRatio:    FormatPercentage(get(FieldFanLikeRatio)),
		CompletionRate:  FormatPercentage(get(FieldCompletionRate)),
	}
	rec.InteractionRate = InteractionRate(rec.Views, rec.Likes, rec.Comments, rec.Shares)
	return rec, nil
}

// InteractionRate is (likes+comments+shares)/views*100, or 0 without views.
func InteractionRate(views, likes, comments, shares int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(likes+comments+shares) / float64(views) * 100
}

// FormatPercentage renders a ratio cell as "NN.NN%".
// Numeric values are spreadsheet fractions and are multiplied by 100, so a
// literal 50 becomes "5000.00%". Text passes through; missing values are "0%".
func FormatPercentage(v any) string {
	if v == nil {
		return "0%"
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return "0%"
		}
		return s
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
	}
	return fmt.Sprint(v)
}

// ParsePercent reads the leading number of a percentage string such as "45.5%".
// Anything unreadable counts as 0.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(width.Fold.String(s))
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) {
			end++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func normaliseHeader(s string) string {
	s = width.Fold.String(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.ToLower(strings.Join(fields, " "))
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// toCount reads a metric cell; thousands separators are ignored and anything
// unreadable counts as 0.
func toCount(v any) int64 {
	if s, ok := v.(string); ok {
		s = strings.ReplaceAll(width.Fold.String(strings.TrimSpace(s)), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		v = f
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return 0
	}
	return int64(math.Round(f))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
