package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// ListContactInfo returns all contact entries, active or not.
func (a *API) ListContactInfo(c *gin.Context) {
	items, err := a.contacts.List()
	if err != nil {
		respondServiceError(c, err, "Failed to load contact info")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, contactInfoPayload))
}

func (a *API) GetContactInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.contacts.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load contact info")
		return
	}
	c.JSON(http.StatusOK, contactInfoPayload(*item))
}

// CreateContactInfo stores a contact entry. Marking it primary clears the
// flag on other entries of the same type.
func (a *API) CreateContactInfo(c *gin.Context) {
	var input service.ContactInfoInput
	if !bindJSON(c, &input, "Invalid contact info payload") {
		return
	}
	item, err := a.contacts.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create contact info")
		return
	}
	c.JSON(http.StatusCreated, contactInfoPayload(*item))
}

func (a *API) UpdateContactInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ContactInfoInput
	if !bindJSON(c, &input, "Invalid contact info payload") {
		return
	}
	item, err := a.contacts.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update contact info")
		return
	}
	c.JSON(http.StatusOK, contactInfoPayload(*item))
}

func (a *API) DeleteContactInfo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.contacts.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete contact info")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderContactInfo accepts {"contactInfo": [{id, order}]}.
func (a *API) ReorderContactInfo(c *gin.Context) {
	positions, ok := bindReorder(c, "contactInfo")
	if !ok {
		return
	}
	if err := a.contacts.Reorder(positions); err != nil {
		respondServiceError(c, err, "Failed to reorder contact info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}
