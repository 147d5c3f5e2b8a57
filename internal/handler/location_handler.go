package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
)

// 地理层级的只读接口，用于前端级联选择。

func (a *API) ListCountries(c *gin.Context) {
	countries, err := a.locations.Countries()
	if err != nil {
		respondServiceError(c, err, "Failed to load countries")
		return
	}
	c.JSON(http.StatusOK, mapPayload(countries, func(country db.Country) gin.H {
		return gin.H{
			"id":            country.ID,
			"name":          country.Name,
			"official_name": country.OfficialName,
			"iso2":          country.ISO2,
			"iso3":          country.ISO3,
			"region":        country.Region,
			"subregion":     country.Subregion,
			"capital":       country.Capital,
		}
	}))
}

func (a *API) ListRegions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	regions, err := a.locations.RegionsByCountry(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load regions")
		return
	}
	c.JSON(http.StatusOK, mapPayload(regions, func(region db.Region) gin.H {
		return gin.H{"id": region.ID, "code": region.RegionCode, "name": region.Name, "country_id": region.CountryID}
	}))
}

func (a *API) ListProvinces(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	provinces, err := a.locations.ProvincesByRegion(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load provinces")
		return
	}
	c.JSON(http.StatusOK, mapPayload(provinces, func(province db.Province) gin.H {
		return gin.H{"id": province.ID, "code": province.ProvinceCode, "name": province.Name, "region_id": province.RegionID}
	}))
}

func (a *API) ListCities(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cities, err := a.locations.CitiesByProvince(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load cities")
		return
	}
	c.JSON(http.StatusOK, mapPayload(cities, func(city db.CityMunicipality) gin.H {
		return gin.H{
			"id":          city.ID,
			"code":        city.CitymunCode,
			"name":        city.Name,
			"type":        city.Type,
			"zip_code":    city.ZipCode,
			"postal_code": city.PostalCode,
			"province_id": city.ProvinceID,
		}
	}))
}

func (a *API) ListBarangays(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	barangays, err := a.locations.BarangaysByCity(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load barangays")
		return
	}
	c.JSON(http.StatusOK, mapPayload(barangays, func(barangay db.Barangay) gin.H {
		return gin.H{
			"id":          barangay.ID,
			"code":        barangay.BarangayCode,
			"name":        barangay.Name,
			"zip_code":    barangay.ZipCode,
			"postal_code": barangay.PostalCode,
			"city_id":     barangay.CitymunID,
		}
	}))
}
