package dataprocessing

import (
	"sort"

	"picklist/pkg/contracts/domain"
)

// Aggregator produces the three grouped views over the long relation.
// Grouping-key equality is exact string equality; missing fields group as
// the empty string. All sorts are stable so output is deterministic across
// runs on identical input.
type Aggregator struct {
	sizes *SizeNormalizer
}

// NewAggregator constructs an aggregator sharing the reshaper's size order.
func NewAggregator(sizes *SizeNormalizer) *Aggregator {
	return &Aggregator{sizes: sizes}
}

// ByProduct groups facts by (product name, product code, color code, color
// name, size), sums quantity into total units, and sorts by product name,
// product code, color code, then size rank.
func (a *Aggregator) ByProduct(facts []domain.Fact) []domain.ProductRow {
	type key struct {
		productName, productCode, colorCode, colorName, size string
	}
	index := make(map[key]int)
	var rows []domain.ProductRow
	for _, f := range facts {
		k := key{f.ProductName, f.ProductCode, f.ColorCode, f.ColorName, f.Size}
		if i, ok := index[k]; ok {
			rows[i].TotalUnits += f.Quantity
			continue
		}
		index[k] = len(rows)
		rows = append(rows, domain.ProductRow{
			ProductName: f.ProductName,
			ProductCode: f.ProductCode,
			ColorCode:   f.ColorCode,
			ColorName:   f.ColorName,
			Size:        f.Size,
			TotalUnits:  f.Quantity,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return a.lessProduct(
			rows[i].ProductName, rows[i].ProductCode, rows[i].ColorCode, rows[i].Size,
			rows[j].ProductName, rows[j].ProductCode, rows[j].ColorCode, rows[j].Size)
	})
	return rows
}

// ByCenter groups facts by center plus the product key, sums quantity into
// order quantity, and partitions the rows by center. Partitions are ordered
// by center name; rows within each partition sort as in ByProduct. Centers
// with no qualifying facts produce no partition.
func (a *Aggregator) ByCenter(facts []domain.Fact) []domain.CenterReport {
	type key struct {
		center, productName, productCode, colorCode, colorName, size string
	}
	index := make(map[key]int)
	var rows []domain.CenterRow
	for _, f := range facts {
		k := key{f.CenterName, f.ProductName, f.ProductCode, f.ColorCode, f.ColorName, f.Size}
		if i, ok := index[k]; ok {
			rows[i].OrderQty += f.Quantity
			continue
		}
		index[k] = len(rows)
		rows = append(rows, domain.CenterRow{
			CenterName:  f.CenterName,
			ProductName: f.ProductName,
			ProductCode: f.ProductCode,
			ColorCode:   f.ColorCode,
			ColorName:   f.ColorName,
			Size:        f.Size,
			OrderQty:    f.Quantity,
		})
	}

	partIndex := make(map[string]int)
	var reports []domain.CenterReport
	for _, row := range rows {
		i, ok := partIndex[row.CenterName]
		if !ok {
			i = len(reports)
			partIndex[row.CenterName] = i
			reports = append(reports, domain.CenterReport{CenterName: row.CenterName})
		}
		reports[i].Rows = append(reports[i].Rows, row)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CenterName < reports[j].CenterName
	})
	for _, report := range reports {
		rows := report.Rows
		sort.SliceStable(rows, func(i, j int) bool {
			return a.lessProduct(
				rows[i].ProductName, rows[i].ProductCode, rows[i].ColorCode, rows[i].Size,
				rows[j].ProductName, rows[j].ProductCode, rows[j].ColorCode, rows[j].Size)
		})
	}
	return reports
}

// ByStore does no pre-aggregation: it stable-sorts the raw facts by center,
// store code, store name, product name, product code, color code, and size
// rank, then partitions by (store code, store name) in first-encountered
// order. Each partition carries the summed quantity for the trailing
// summary row.
func (a *Aggregator) ByStore(facts []domain.Fact) []domain.StoreReport {
	sorted := make([]domain.Fact, len(facts))
	copy(sorted, facts)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, fj := sorted[i], sorted[j]
		if fi.CenterName != fj.CenterName {
			return fi.CenterName < fj.CenterName
		}
		if fi.StoreCode != fj.StoreCode {
			return fi.StoreCode < fj.StoreCode
		}
		if fi.StoreName != fj.StoreName {
			return fi.StoreName < fj.StoreName
		}
		return a.lessProduct(
			fi.ProductName, fi.ProductCode, fi.ColorCode, fi.Size,
			fj.ProductName, fj.ProductCode, fj.ColorCode, fj.Size)
	})

	type key struct{ code, name string }
	partIndex := make(map[key]int)
	var reports []domain.StoreReport
	for _, f := range sorted {
		k := key{f.StoreCode, f.StoreName}
		i, ok := partIndex[k]
		if !ok {
			i = len(reports)
			partIndex[k] = i
			reports = append(reports, domain.StoreReport{
				StoreCode:  f.StoreCode,
				StoreName:  f.StoreName,
				CenterName: f.CenterName,
			})
		}
		reports[i].Rows = append(reports[i].Rows, domain.StoreRow{
			ProductName: f.ProductName,
			ProductCode: f.ProductCode,
			ColorName:   f.ColorName,
			Size:        f.Size,
			Quantity:    f.Quantity,
		})
		reports[i].TotalQty += f.Quantity
	}
	return reports
}

// lessProduct is the shared ordering over the product key: product name,
// product code, color code, then the size dimension by rank rather than
// text.
func (a *Aggregator) lessProduct(name1, code1, color1, size1, name2, code2, color2, size2 string) bool {
	if name1 != name2 {
		return name1 < name2
	}
	if code1 != code2 {
		return code1 < code2
	}
	if color1 != color2 {
		return color1 < color2
	}
	return a.sizes.Rank(size1) < a.sizes.Rank(size2)
}
