package service

import (
	"errors"
	"testing"

	"github.com/portfolio/internal/db"
)

func TestLocationHierarchy(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewLocationService(gdb)

	country := db.Country{Name: "Philippines", ISO2: "PH", ISO3: "PHL"}
	other := db.Country{Name: "Japan", ISO2: "JP", ISO3: "JPN"}
	if err := gdb.Create(&[]*db.Country{&country, &other}).Error; err != nil {
		t.Fatalf("seed countries failed: %v", err)
	}
	region := db.Region{RegionCode: "R01", Name: "Ilocos", CountryID: country.ID}
	gdb.Create(&region)
	province := db.Province{ProvinceCode: "P01", Name: "Ilocos Norte", RegionID: region.ID}
	gdb.Create(&province)
	city := db.CityMunicipality{CitymunCode: "C01", Name: "Laoag", Type: db.CityTypeCity, ProvinceID: province.ID}
	gdb.Create(&city)
	gdb.Create(&[]db.Barangay{
		{BarangayCode: "B02", Name: "Zamboanga", CitymunID: city.ID},
		{BarangayCode: "B01", Name: "Araniw", CitymunID: city.ID},
	})

	countries, err := svc.Countries()
	if err != nil {
		t.Fatalf("list countries failed: %v", err)
	}
	if len(countries) != 2 || countries[0].Name != "Japan" {
		t.Fatalf("expected countries sorted by name, got %+v", countries)
	}

	regions, err := svc.RegionsByCountry(country.ID)
	if err != nil || len(regions) != 1 {
		t.Fatalf("unexpected regions %+v (%v)", regions, err)
	}
	if empty, err := svc.RegionsByCountry(other.ID); err != nil || len(empty) != 0 {
		t.Fatalf("expected empty regions for japan, got %+v (%v)", empty, err)
	}

	provinces, _ := svc.ProvincesByRegion(region.ID)
	cities, _ := svc.CitiesByProvince(province.ID)
	if len(provinces) != 1 || len(cities) != 1 {
		t.Fatalf("unexpected provinces/cities: %d/%d", len(provinces), len(cities))
	}

	barangays, err := svc.BarangaysByCity(city.ID)
	if err != nil {
		t.Fatalf("list barangays failed: %v", err)
	}
	if len(barangays) != 2 || barangays[0].Name != "Araniw" {
		t.Fatalf("expected barangays sorted by name, got %+v", barangays)
	}

	if _, err := svc.ProvincesByRegion(999); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected missing parent to be not found, got %v", err)
	}

	counts, err := svc.Counts()
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts["countries"] != 2 || counts["barangays"] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
