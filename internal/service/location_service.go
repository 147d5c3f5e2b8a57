package service

import (
	"fmt"

	"github.com/portfolio/internal/db"
	"gorm.io/gorm"
)

// LocationService 只读的地理层级查询：国家 -> 大区 -> 省 -> 市 -> 村。
type LocationService struct {
	db *gorm.DB
}

// NewLocationService 构造 LocationService
func NewLocationService(gdb *gorm.DB) *LocationService {
	return &LocationService{db: gdb}
}

// Countries 按名称排序，已软删除的国家不返回
func (s *LocationService) Countries() ([]db.Country, error) {
	var countries []db.Country
	if err := s.db.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

func (s *LocationService) RegionsByCountry(countryID uint) ([]db.Region, error) {
	if err := s.ensureExists(&db.Country{}, countryID); err != nil {
		return nil, err
	}
	var regions []db.Region
	if err := s.db.Where("country_id = ?", countryID).Order("name ASC").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return regions, nil
}

func (s *LocationService) ProvincesByRegion(regionID uint) ([]db.Province, error) {
	if err := s.ensureExists(&db.Region{}, regionID); err != nil {
		return nil, err
	}
	var provinces []db.Province
	if err := s.db.Where("region_id = ?", regionID).Order("name ASC").Find(&provinces).Error; err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	return provinces, nil
}

func (s *LocationService) CitiesByProvince(provinceID uint) ([]db.CityMunicipality, error) {
	if err := s.ensureExists(&db.Province{}, provinceID); err != nil {
		return nil, err
	}
	var cities []db.CityMunicipality
	if err := s.db.Where("province_id = ?", provinceID).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (s *LocationService) BarangaysByCity(cityID uint) ([]db.Barangay, error) {
	if err := s.ensureExists(&db.CityMunicipality{}, cityID); err != nil {
		return nil, err
	}
	var barangays []db.Barangay
	if err := s.db.Where("citymun_id = ?", cityID).Order("name ASC").Find(&barangays).Error; err != nil {
		return nil, fmt.Errorf("list barangays: %w", err)
	}
	return barangays, nil
}

// Counts 各层级的记录数
func (s *LocationService) Counts() (map[string]int64, error) {
	models := map[string]interface{}{
		"countries": &db.Country{},
		"regions":   &db.Region{},
		"provinces": &db.Province{},
		"cities":    &db.CityMunicipality{},
		"barangays": &db.Barangay{},
	}
	counts := make(map[string]int64, len(models))
	for name, model := range models {
		var total int64
		if err := s.db.Model(model).Count(&total).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = total
	}
	return counts, nil
}

func (s *LocationService) ensureExists(model interface{}, id uint) error {
	var total int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&total).Error; err != nil {
		return fmt.Errorf("find parent location: %w", err)
	}
	if total == 0 {
		return ErrLocationNotFound
	}
	return nil
}
