package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gympulse/gym-management-api/internal/core/ports"
)

type MemberHandler struct {
	members ports.MemberService
}

func NewMemberHandler(members ports.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type createMemberRequest struct {
	FirstName        string `json:"firstName" validate:"required,min=2,max=50"`
	LastName         string `json:"lastName" validate:"required,min=2,max=50"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,e164"`
	DateOfBirth      string `json:"dateOfBirth" validate:"required"`
	Address          string `json:"address" validate:"required,max=200"`
	EmergencyContact string `json:"emergencyContact" validate:"required,max=100"`
	EmergencyPhone   string `json:"emergencyPhone" validate:"required,e164"`
	MembershipType   string `json:"membershipType" validate:"required,oneof=BASIC PREMIUM VIP"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	Notes            string `json:"notes" validate:"max=500"`
}

type updateMemberRequest struct {
	FirstName        *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName         *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Phone            *string `json:"phone" validate:"omitempty,e164"`
	Address          *string `json:"address" validate:"omitempty,max=200"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=100"`
	EmergencyPhone   *string `json:"emergencyPhone" validate:"omitempty,e164"`
	MembershipType   *string `json:"membershipType" validate:"omitempty,oneof=BASIC PREMIUM VIP"`
	EndDate          *string `json:"endDate"`
	Notes            *string `json:"notes" validate:"omitempty,max=500"`
}

// Create enrolls a new gym member.
//
// @Summary      Enroll a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      createMemberRequest  true  "Member details"
// @Success      201   {object}  domain.Member
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var req createMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.members.Create(c.Request().Context(), ports.CreateMemberInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		MembershipType:   req.MembershipType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, member)
}

// Get returns a single member by id.
//
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Param        id   path      int  true  "Member id"
// @Success      200  {object}  domain.Member
// @Failure      404  {object}  map[string]string
// @Router       /members/{id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	member, err := h.members.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// List returns all members; ?active=true restricts to active ones.
//
// @Summary      List members
// @Tags         members
// @Produce      json
// @Param        active  query     bool  false  "Only active members"
// @Success      200     {array}   domain.Member
// @Router       /members [get]
func (h *MemberHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	members, err := h.members.List(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// Update applies a partial update to a member.
//
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Member id"
// @Param        body  body      updateMemberRequest  true  "Fields to update"
// @Success      200   {object}  domain.Member
// @Failure      404   {object}  map[string]string
// @Router       /members/{id} [put]
func (h *MemberHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.members.Update(c.Request().Context(), id, ports.UpdateMemberInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		MembershipType:   req.MembershipType,
		EndDate:          req.EndDate,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Deactivate marks a member inactive without removing the record.
//
// @Summary      Deactivate a member
// @Tags         members
// @Produce      json
// @Param        id   path  int  true  "Member id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /members/{id}/deactivate [post]
func (h *MemberHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.members.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a member record permanently.
//
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Param        id   path  int  true  "Member id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.members.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
