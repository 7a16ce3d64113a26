package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picklist/internal/config"
	"picklist/pkg/contracts/domain"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(NewSizeNormalizer(config.DefaultLayout().SizeOrder))
}

func fact(center, product, code, colorCode, colorName, size, storeCode, storeName string, qty float64) domain.Fact {
	return domain.Fact{
		CenterName:  center,
		ProductName: product,
		ProductCode: code,
		ColorCode:   colorCode,
		ColorName:   colorName,
		Size:        size,
		StoreCode:   storeCode,
		StoreName:   storeName,
		Quantity:    qty,
	}
}

func TestAggregator_ByProduct_SumsAcrossStores(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 3),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 5),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "B02", "店舗B", 2),
	}

	rows := a.ByProduct(facts)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].TotalUnits)
	assert.Equal(t, "シャツ", rows[0].ProductName)
	assert.Empty(t, rows[0].Check, "verification column starts empty")
}

func TestAggregator_ByProduct_SortsBySizeRankNotText(t *testing.T) {
	a := newTestAggregator()

	// Lexicographically "3L" < "XL" < "XS"; by rank XS < XL < 3L.
	facts := []domain.Fact{
		fact("", "シャツ", "MK100", "10", "白", "3L", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "10", "白", "XS", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "10", "白", "XL", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "10", "白", "不明", "A01", "店舗A", 1),
	}

	rows := a.ByProduct(facts)
	require.Len(t, rows, 4)

	var sizes []string
	for _, r := range rows {
		sizes = append(sizes, r.Size)
	}
	assert.Equal(t, []string{"XS", "XL", "3L", "不明"}, sizes,
		"known sizes in rank order, unknown last")
}

func TestAggregator_ByProduct_SortKeyPrecedence(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("", "パンツ", "MK200", "20", "黒", "S", "A01", "店舗A", 1),
		fact("", "シャツ", "MK101", "10", "白", "S", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "30", "紺", "S", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "10", "白", "S", "A01", "店舗A", 1),
	}

	rows := a.ByProduct(facts)
	require.Len(t, rows, 4)
	assert.Equal(t, "MK100", rows[0].ProductCode)
	assert.Equal(t, "10", rows[0].ColorCode)
	assert.Equal(t, "30", rows[1].ColorCode)
	assert.Equal(t, "MK101", rows[2].ProductCode)
	assert.Equal(t, "パンツ", rows[3].ProductName)
}

func TestAggregator_ByProduct_StableOnEqualKeys(t *testing.T) {
	a := newTestAggregator()

	// Same sort key (name, code, color code, size), different color name:
	// input order must survive the stable sort.
	facts := []domain.Fact{
		fact("", "シャツ", "MK100", "10", "オフ白", "M", "A01", "店舗A", 1),
		fact("", "シャツ", "MK100", "10", "生成", "M", "A01", "店舗A", 1),
	}

	rows := a.ByProduct(facts)
	require.Len(t, rows, 2)
	assert.Equal(t, "オフ白", rows[0].ColorName)
	assert.Equal(t, "生成", rows[1].ColorName)
}

func TestAggregator_ByCenter_PartitionsByCenter(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("大阪センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 2),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "B02", "店舗B", 3),
		fact("大阪センター", "シャツ", "MK100", "10", "白", "S", "A01", "店舗A", 1),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "C03", "店舗C", 4),
	}

	reports := a.ByCenter(facts)
	require.Len(t, reports, 2)

	// Partitions ordered by center name.
	assert.Equal(t, "大阪センター", reports[0].CenterName)
	assert.Equal(t, "東京センター", reports[1].CenterName)

	// Rows within a partition sort by the product key; quantities from
	// different stores of the same center collapse into one row.
	osaka := reports[0]
	require.Len(t, osaka.Rows, 2)
	assert.Equal(t, "S", osaka.Rows[0].Size)
	assert.Equal(t, "M", osaka.Rows[1].Size)

	tokyo := reports[1]
	require.Len(t, tokyo.Rows, 1)
	assert.Equal(t, 7.0, tokyo.Rows[0].OrderQty)
}

func TestAggregator_ByCenter_NoEmptyPartitions(t *testing.T) {
	a := newTestAggregator()

	reports := a.ByCenter(nil)
	assert.Empty(t, reports)
}

func TestAggregator_ByStore_NoPreAggregation(t *testing.T) {
	a := newTestAggregator()

	// Two facts with identical keys stay two rows; store reports list raw
	// picking lines.
	facts := []domain.Fact{
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 2),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 3),
	}

	reports := a.ByStore(facts)
	require.Len(t, reports, 1)
	assert.Len(t, reports[0].Rows, 2)
	assert.Equal(t, 5.0, reports[0].TotalQty)
	assert.Equal(t, "東京センター", reports[0].CenterName)
}

func TestAggregator_ByStore_PartitionCompleteness(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "B02", "店舗B", 1),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 2),
		fact("大阪センター", "パンツ", "MK200", "20", "黒", "L", "A01", "店舗A2", 3),
		fact("東京センター", "シャツ", "MK100", "10", "白", "S", "B02", "店舗B", 4),
	}

	reports := a.ByStore(facts)
	require.Len(t, reports, 3, "each distinct (code, name) pair exactly once")

	seen := make(map[[2]string]bool)
	var totals float64
	for _, r := range reports {
		key := [2]string{r.StoreCode, r.StoreName}
		assert.False(t, seen[key], "duplicate store partition %v", key)
		seen[key] = true
		totals += r.TotalQty
	}
	assert.Equal(t, 10.0, totals, "store totals conserve the input quantities")

	// Partitions follow the sorted fact order: center name first, so the
	// 大阪センター store leads.
	assert.Equal(t, "店舗A2", reports[0].StoreName)
	assert.Equal(t, "店舗A", reports[1].StoreName)
	assert.Equal(t, "店舗B", reports[2].StoreName)

	// Within a store, rows follow the product key with size rank order.
	b := reports[2]
	require.Len(t, b.Rows, 2)
	assert.Equal(t, "S", b.Rows[0].Size)
	assert.Equal(t, "M", b.Rows[1].Size)
}

func TestAggregator_Idempotence(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 3),
		fact("大阪センター", "パンツ", "MK200", "20", "黒", "L", "B02", "店舗B", 2),
		fact("東京センター", "シャツ", "MK100", "10", "白", "S", "A01", "店舗A", 1),
	}

	assert.Equal(t, a.ByProduct(facts), a.ByProduct(facts))
	assert.Equal(t, a.ByCenter(facts), a.ByCenter(facts))
	assert.Equal(t, a.ByStore(facts), a.ByStore(facts))
}

func TestAggregator_ByStore_DoesNotMutateInput(t *testing.T) {
	a := newTestAggregator()

	facts := []domain.Fact{
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "B02", "店舗B", 1),
		fact("東京センター", "シャツ", "MK100", "10", "白", "M", "A01", "店舗A", 2),
	}
	orig := make([]domain.Fact, len(facts))
	copy(orig, facts)

	a.ByStore(facts)
	assert.Equal(t, orig, facts, "facts are derived data, never mutated")
}
