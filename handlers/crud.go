package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"restaurant-admin/access"
	"restaurant-admin/admin"
	"restaurant-admin/middleware"
	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/gin-gonic/gin"
)

// ListEntities returns one page of a view's rows
func (h *Handler) ListEntities(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	caller := middleware.GetCaller(c)
	if err := v.Permission(caller, access.ActionList, nil); err != nil {
		deny(c, err)
		return
	}

	size, _ := strconv.Atoi(c.Query("page_size"))
	opts := store.ListOptions{PageSize: v.PageSizeFor(size)}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	opts.Page = clampPage(page, opts.PageSize)
	if v.Scope != nil {
		opts.Scope = v.Scope(caller)
	}

	list := v.NewList()
	total, err := h.Store.List(c.Request.Context(), v.New(), list, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([]map[string]any, 0, opts.PageSize)
	for _, e := range v.Entities(list) {
		row, err := admin.Row(e)
		if err != nil {
			respondError(c, err)
			return
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"view":      v.Name,
		"columns":   v.Columns(),
		"page":      opts.Page,
		"page_size": opts.PageSize,
		"total":     total,
		"rows":      rows,
	})
}

// ExportEntities streams every visible row of a view as CSV
func (h *Handler) ExportEntities(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	if !v.CanExport {
		c.JSON(http.StatusNotFound, gin.H{"error": "Export is not enabled for " + v.Name})
		return
	}
	caller := middleware.GetCaller(c)
	if err := v.Permission(caller, access.ActionExport, nil); err != nil {
		deny(c, err)
		return
	}

	var opts store.ListOptions
	if v.Scope != nil {
		opts.Scope = v.Scope(caller)
	}
	list := v.NewList()
	if _, err := h.Store.List(c.Request.Context(), v.New(), list, opts); err != nil {
		respondError(c, err)
		return
	}

	cols := v.Columns()
	entities := v.Entities(list)
	records := make([][]string, 0, len(entities)+1)
	records = append(records, cols)
	for _, e := range entities {
		rec, err := v.Record(e, cols)
		if err != nil {
			respondError(c, err)
			return
		}
		records = append(records, rec)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, v.Endpoint))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(records); err != nil {
		log.Printf("export %s: %v", v.Endpoint, err)
	}
}

// clampPage keeps page non-negative and its row offset below MaxInt32.
func clampPage(page, size int) int {
	if page < 0 {
		return 0
	}
	if size > 0 && page > math.MaxInt32/size {
		return math.MaxInt32 / size
	}
	return page
}

// GetEntity returns a single row
func (h *Handler) GetEntity(c *gin.Context) {
	v, e, ok := h.load(c, access.ActionRead)
	if !ok {
		return
	}
	h.respondRow(c, http.StatusOK, v, e)
}

// CreateEntity inserts a row from the submitted form
func (h *Handler) CreateEntity(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	if !v.CanCreate {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Create is not enabled for " + v.Name})
		return
	}
	caller := middleware.GetCaller(c)
	if err := v.Permission(caller, access.ActionCreate, nil); err != nil {
		deny(c, err)
		return
	}

	e := v.New()
	form, ok := bindForm(c)
	if !ok {
		return
	}
	form = v.FilterForm(e, form, false)
	if err := h.save(c, v, caller, form, e, true); err != nil {
		respondError(c, err)
		return
	}
	h.respondRow(c, http.StatusCreated, v, e)
}

// EditEntity applies the full edit form to a row
func (h *Handler) EditEntity(c *gin.Context) { h.update(c, false) }

// PatchEntity applies an inline edit limited to the view's editable columns
func (h *Handler) PatchEntity(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, inline bool) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	if !v.CanEdit {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Edit is not enabled for " + v.Name})
		return
	}
	_, e, ok := h.load(c, access.ActionEdit)
	if !ok {
		return
	}
	form, ok := bindForm(c)
	if !ok {
		return
	}
	form = v.FilterForm(e, form, inline)
	if err := h.save(c, v, middleware.GetCaller(c), form, e, false); err != nil {
		respondError(c, err)
		return
	}
	h.respondRow(c, http.StatusOK, v, e)
}

// DeleteEntity removes a row and everything that depends on it
func (h *Handler) DeleteEntity(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	if !v.CanDelete {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Delete is not enabled for " + v.Name})
		return
	}
	_, e, ok := h.load(c, access.ActionDelete)
	if !ok {
		return
	}
	if err := h.Store.Delete(c.Request.Context(), v.New(), e.EntityID()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": v.Name + " deleted", "id": e.EntityID()})
}

func (h *Handler) save(c *gin.Context, v *admin.View, caller access.Caller, form map[string]any, e models.Entity, created bool) error {
	if err := v.Apply(e, form); err != nil {
		return err
	}
	if v.OnModelChange != nil {
		if err := v.OnModelChange(caller, form, e, created); err != nil {
			return err
		}
	}
	if created {
		return h.Store.Create(c.Request.Context(), e)
	}
	return h.Store.Update(c.Request.Context(), e)
}

// load resolves the view and row named in the path and checks the caller
// may perform action on it.
func (h *Handler) load(c *gin.Context, action access.Action) (*admin.View, models.Entity, bool) {
	v, ok := h.view(c)
	if !ok {
		return nil, nil, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": v.Name + " not found"})
		return nil, nil, false
	}
	caller := middleware.GetCaller(c)
	// Anonymous callers must not learn whether the row exists.
	if !caller.Authenticated() {
		deny(c, access.ErrLoginRequired)
		return nil, nil, false
	}

	e := v.New()
	if err := h.Store.Get(c.Request.Context(), e, uint(id)); err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	if err := v.Permission(caller, action, e); err != nil {
		deny(c, err)
		return nil, nil, false
	}
	return v, e, true
}

func (h *Handler) view(c *gin.Context) (*admin.View, bool) {
	v, ok := h.Registry.Lookup(c.Param("view"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown admin view " + strconv.Quote(c.Param("view"))})
		return nil, false
	}
	return v, true
}

func (h *Handler) respondRow(c *gin.Context, status int, v *admin.View, e models.Entity) {
	row, err := admin.Row(e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"view": v.Name, "row": row})
}

func bindForm(c *gin.Context) (map[string]any, bool) {
	var form map[string]any
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object: " + err.Error()})
		return nil, false
	}
	return form, true
}
