package db

import (
	"time"

	"gorm.io/gorm"
)

// Country 国家参考数据，支持软删除。
type Country struct {
	gorm.Model
	Name         string  `gorm:"size:255;not null;index"`
	OfficialName string  `gorm:"size:255"`
	ISO2         string  `gorm:"column:iso2;size:2;uniqueIndex"`
	ISO3         string  `gorm:"column:iso3;size:3"`
	NumericCode  string  `gorm:"size:3"`
	Region       string  `gorm:"size:100"`
	Subregion    string  `gorm:"size:100"`
	Capital      string  `gorm:"size:255"`
	Area         float64 `gorm:"default:0"`
	Population   int64   `gorm:"default:0"`
}

// TableName 返回表名
func (Country) TableName() string {
	return "ref_countries"
}

// Region 国家下的大区，RegionCode 全局唯一。
type Region struct {
	ID         uint   `gorm:"primaryKey"`
	RegionCode string `gorm:"size:50;uniqueIndex;not null"`
	Name       string `gorm:"size:255;not null"`
	CountryID  uint   `gorm:"index;not null"`
	Country    Country
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 返回表名
func (Region) TableName() string {
	return "ref_regions"
}

// Province 省
type Province struct {
	ID           uint   `gorm:"primaryKey"`
	ProvinceCode string `gorm:"size:80;uniqueIndex;not null"`
	Name         string `gorm:"size:255;not null"`
	RegionID     uint   `gorm:"index;not null"`
	Region       Region
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 返回表名
func (Province) TableName() string {
	return "ref_provinces"
}

// 城市/自治市类型
const (
	CityTypeCity         = "City"
	CityTypeMunicipality = "Municipality"
)

// CityMunicipality 城市或自治市
type CityMunicipality struct {
	ID          uint   `gorm:"primaryKey"`
	CitymunCode string `gorm:"column:citymun_code;size:100;uniqueIndex;not null"`
	Name        string `gorm:"size:255;not null"`
	Type        string `gorm:"size:20;not null"`
	ZipCode     string `gorm:"size:10"`
	PostalCode  string `gorm:"size:10"`
	ProvinceID  uint   `gorm:"index;not null"`
	Province    Province
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 返回表名
func (CityMunicipality) TableName() string {
	return "ref_cities_municipalities"
}

// Barangay 最小行政单位
type Barangay struct {
	ID           uint             `gorm:"primaryKey"`
	BarangayCode string           `gorm:"size:120;uniqueIndex;not null"`
	Name         string           `gorm:"size:255;not null"`
	ZipCode      string           `gorm:"size:10"`
	PostalCode   string           `gorm:"size:10"`
	CitymunID    uint             `gorm:"column:citymun_id;index;not null"`
	City         CityMunicipality `gorm:"foreignKey:CitymunID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 返回表名
func (Barangay) TableName() string {
	return "ref_barangays"
}
