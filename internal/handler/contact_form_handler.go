package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

// SubmitContactForm 公开的留言接口，接受 JSON 或表单
func (a *API) SubmitContactForm(c *gin.Context) {
	var input service.ContactFormInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact form payload")
		return
	}

	form, err := a.messages.Submit(input)
	if err != nil {
		respondServiceError(c, err, "Failed to submit message")
		return
	}
	if err := a.analytics.RecordSubmission(time.Now().UTC()); err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thanks! Your message has been sent.",
		"id":      form.ID,
	})
}

// ListContactForms ?status= 过滤，最新的在前
func (a *API) ListContactForms(c *gin.Context) {
	forms, err := a.messages.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, mapPayload(forms, contactFormPayload))
}

// CountContactForms 各状态的留言数量
func (a *API) CountContactForms(c *gin.Context) {
	counts, err := a.messages.CountByStatus()
	if err != nil {
		respondServiceError(c, err, "Failed to count messages")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (a *API) GetContactForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	form, err := a.messages.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load message")
		return
	}
	c.JSON(http.StatusOK, contactFormPayload(*form))
}

// MarkContactFormRead and the two handlers below move a message through its status flow.
func (a *API) MarkContactFormRead(c *gin.Context) {
	a.transitionContactForm(c, a.messages.MarkRead)
}

func (a *API) MarkContactFormReplied(c *gin.Context) {
	a.transitionContactForm(c, a.messages.MarkReplied)
}

func (a *API) MarkContactFormSpam(c *gin.Context) {
	a.transitionContactForm(c, a.messages.MarkSpam)
}

func (a *API) transitionContactForm(c *gin.Context, apply func(uint) (*db.ContactForm, error)) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	form, err := apply(id)
	if err != nil {
		respondServiceError(c, err, "Failed to update message")
		return
	}
	c.JSON(http.StatusOK, contactFormPayload(*form))
}

func (a *API) DeleteContactForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.messages.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete message")
		return
	}
	c.Status(http.StatusNoContent)
}
