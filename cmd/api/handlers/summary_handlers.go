package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-compare/cmd/api/dto"
	"product-compare/cmd/api/services"
)

// CreateSummaryHandler godoc
// @Summary      Analyze a product
// @Description  상품 URL 또는 설명을 분석해 요약을 저장합니다. URL 직접 분석이 실패하면 페이지를 스크래핑해 한 번 더 시도합니다.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateSummaryRequestDTO  true  "상품 URL 또는 설명"
// @Success      200   {object}  dto.SummaryResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /summaries [post]
func CreateSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req dto.CreateSummaryRequestDTO
		if !bindJSON(c, &req) {
			return
		}
		summary, err := svc.CreateSummary(c.Request.Context(), userID, req.Input)
		if err != nil {
			respondError(c, err, services.MsgGenerateFailed)
			return
		}
		c.JSON(http.StatusOK, dto.SummaryResponseDTO{Success: true, Data: dto.FromSummary(summary)})
	}
}

// ListSummariesHandler godoc
// @Summary      List my summaries
// @Description  최신순으로 모든 요약을 반환합니다. q 가 있으면 제목/요약 텍스트 검색으로 좁힙니다.
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "텍스트 검색어"
// @Success      200  {object}  dto.SummaryListResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /summaries [get]
func ListSummariesHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		list, err := svc.ListSummaries(c.Request.Context(), userID, c.Query("q"))
		if err != nil {
			respondError(c, err, services.MsgFetchFailed)
			return
		}
		c.JSON(http.StatusOK, dto.SummaryListResponseDTO{Success: true, Data: dto.FromSummaries(list)})
	}
}

// GetSummaryHandler godoc
// @Summary      Get summary by id
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {object}  dto.SummaryResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /summaries/{id} [get]
func GetSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		summary, err := svc.GetSummary(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err, services.MsgSummaryNotFound)
			return
		}
		c.JSON(http.StatusOK, dto.SummaryResponseDTO{Success: true, Data: dto.FromSummary(summary)})
	}
}

// GetSummaryHTMLHandler godoc
// @Summary      Render summary as HTML
// @Tags         summaries
// @Produce      html
// @Security     BearerAuth
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {string}  string  "HTML document"
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /summaries/{id}/html [get]
func GetSummaryHTMLHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		doc, err := svc.RenderSummaryHTML(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err, services.MsgSummaryNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
	}
}

// CompareSummariesHandler godoc
// @Summary      Compare summaries
// @Description  내 요약 2개 이상을 비교합니다. 결과는 저장하지 않습니다.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CompareSummariesRequestDTO  true  "비교할 요약 ID 목록"
// @Success      200   {object}  dto.CompareResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /summaries/compare [post]
func CompareSummariesHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req dto.CompareSummariesRequestDTO
		if !bindJSON(c, &req) {
			return
		}
		comparison, err := svc.CompareSummaries(c.Request.Context(), userID, req.IDs)
		if err != nil {
			respondError(c, err, services.MsgCompareFailed)
			return
		}
		c.JSON(http.StatusOK, dto.CompareResponseDTO{Success: true, Comparison: comparison})
	}
}

// DeleteSummaryHandler godoc
// @Summary      Delete summary
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {object}  dto.DeleteSummaryResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /summaries/{id} [delete]
func DeleteSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := svc.DeleteSummary(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err, services.MsgDeleteFailed)
			return
		}
		c.JSON(http.StatusOK, dto.DeleteSummaryResponseDTO{Success: true, Message: services.MsgSummaryDeleted})
	}
}
