// Package seed 生成本地开发用的参考数据与演示内容。
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/portfolio/internal/db"
	"gorm.io/gorm"
)

//go:embed data/countries.json
var countriesJSON []byte

// ErrAlreadySeeded 国家表已有数据时拒绝再次生成
var ErrAlreadySeeded = errors.New("locations already seeded")

const insertBatchSize = 200

// CountryRecord 与 restcountries 导出格式一致
type CountryRecord struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string   `json:"cca2"`
	CCA3       string   `json:"cca3"`
	CCN3       string   `json:"ccn3"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Capital    []string `json:"capital"`
	Area       float64  `json:"area"`
	Population int64    `json:"population"`
}

// LocationSummary 每一层生成的数量
type LocationSummary struct {
	Countries int
	Regions   int
	Provinces int
	Cities    int
	Barangays int
}

// BundledCountries 解析内置的国家数据
func BundledCountries() ([]CountryRecord, error) {
	return ParseCountries(countriesJSON)
}

// ParseCountries 解析 restcountries 格式的 JSON
func ParseCountries(raw []byte) ([]CountryRecord, error) {
	var records []CountryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse countries: %w", err)
	}
	return records, nil
}

// Locations 写入国家并为每个国家合成大区、省、市与村。
// 除国家外都是随机生成的测试数据，rng 决定数量与邮编。
func Locations(ctx context.Context, gdb *gorm.DB, countries []CountryRecord, rng *rand.Rand) (LocationSummary, error) {
	var summary LocationSummary
	if rng == nil {
		return summary, errors.New("seed locations: rng is required")
	}

	var existing int64
	if err := gdb.WithContext(ctx).Model(&db.Country{}).Count(&existing).Error; err != nil {
		return summary, fmt.Errorf("count countries: %w", err)
	}
	if existing > 0 {
		return summary, ErrAlreadySeeded
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]db.Country, 0, len(countries))
		for _, record := range countries {
			rows = append(rows, countryRow(record))
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert countries: %w", err)
		}
		summary.Countries = len(rows)

		regions := regionRows(rows)
		if len(regions) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&regions, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert regions: %w", err)
		}
		summary.Regions = len(regions)

		var provinces []db.Province
		for _, region := range regions {
			count := between(rng, 3, 8)
			for i := 1; i <= count; i++ {
				provinces = append(provinces, db.Province{
					ProvinceCode: fmt.Sprintf("%s_PROV_%d", region.RegionCode, i),
					Name:         fmt.Sprintf("Province %d of %s", i, region.Name),
					RegionID:     region.ID,
				})
			}
		}
		if err := tx.CreateInBatches(&provinces, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert provinces: %w", err)
		}
		summary.Provinces = len(provinces)

		var cities []db.CityMunicipality
		for _, province := range provinces {
			cities = append(cities, cityRows(rng, province, db.CityTypeCity, "CITY", between(rng, 2, 6))...)
			cities = append(cities, cityRows(rng, province, db.CityTypeMunicipality, "MUN", between(rng, 1, 4))...)
		}
		if err := tx.CreateInBatches(&cities, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert cities: %w", err)
		}
		summary.Cities = len(cities)

		var barangays []db.Barangay
		for _, city := range cities {
			count := between(rng, 5, 15)
			for i := 1; i <= count; i++ {
				barangays = append(barangays, db.Barangay{
					BarangayCode: fmt.Sprintf("%s_BRGY_%d", city.CitymunCode, i),
					Name:         fmt.Sprintf("Barangay %d of %s", i, city.Name),
					ZipCode:      randomCode(rng),
					PostalCode:   randomCode(rng),
					CitymunID:    city.ID,
				})
			}
		}
		if err := tx.CreateInBatches(&barangays, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert barangays: %w", err)
		}
		summary.Barangays = len(barangays)
		return nil
	})
	if err != nil {
		return LocationSummary{}, err
	}
	return summary, nil
}

func countryRow(record CountryRecord) db.Country {
	capital := ""
	if len(record.Capital) > 0 {
		capital = record.Capital[0]
	}
	return db.Country{
		Name:         strings.TrimSpace(record.Name.Common),
		OfficialName: strings.TrimSpace(record.Name.Official),
		ISO2:         strings.ToUpper(record.CCA2),
		ISO3:         strings.ToUpper(record.CCA3),
		NumericCode:  record.CCN3,
		Region:       record.Region,
		Subregion:    record.Subregion,
		Capital:      capital,
		Area:         record.Area,
		Population:   record.Population,
	}
}

// regionRows 每个国家的 region 与 subregion 各成一个大区，同名去重。
func regionRows(countries []db.Country) []db.Region {
	var regions []db.Region
	seenName := make(map[string]bool)
	seenCode := make(map[string]bool)
	for _, country := range countries {
		for _, name := range []string{country.Region, country.Subregion} {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			code := regionCode(name, country.ID)
			nameKey := name + "_" + strconv.FormatUint(uint64(country.ID), 10)
			if seenName[nameKey] || seenCode[code] {
				continue
			}
			seenName[nameKey] = true
			seenCode[code] = true
			regions = append(regions, db.Region{RegionCode: code, Name: name, CountryID: country.ID})
		}
	}
	return regions
}

func regionCode(name string, countryID uint) string {
	prefix := []rune(strings.ToUpper(name))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s_%d", string(prefix), countryID)
}

func cityRows(rng *rand.Rand, province db.Province, cityType, codeTag string, count int) []db.CityMunicipality {
	rows := make([]db.CityMunicipality, 0, count)
	for i := 1; i <= count; i++ {
		rows = append(rows, db.CityMunicipality{
			CitymunCode: fmt.Sprintf("%s_%s_%d", province.ProvinceCode, codeTag, i),
			Name:        fmt.Sprintf("%s %d of %s", cityType, i, province.Name),
			Type:        cityType,
			ZipCode:     randomCode(rng),
			PostalCode:  randomCode(rng),
			ProvinceID:  province.ID,
		})
	}
	return rows
}

// between 返回 [min, max] 内的随机数
func between(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func randomCode(rng *rand.Rand) string {
	return strconv.Itoa(between(rng, 1000, 9999))
}
