package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// PortfolioRequest is the body of the batch resolution endpoint.
type PortfolioRequest struct {
	Wallets []entity.WalletRequest `json:"wallets"`
}

// PortfolioHandler serves the portfolio resolution endpoints.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	registry         port.ResolverRegistry
	logger           *zap.Logger
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(
	portfolioService port.PortfolioService,
	registry port.ResolverRegistry,
	logger *zap.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		registry:         registry,
		logger:           logger.Named("PortfolioHandler"),
	}
}

// ResolvePortfolioHandler handles POST /api/v1/portfolio.
// The body must be a JSON object carrying a "wallets" list; anything else is
// rejected before a single resolver runs.
func (h *PortfolioHandler) ResolvePortfolioHandler(c *gin.Context) {
	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Rejected malformed portfolio request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object with a \"wallets\" list"})

		return
	}

	if req.Wallets == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"wallets\" list"})

		return
	}

	entries := h.portfolioService.ResolvePortfolio(c.Request.Context(), req.Wallets)
	c.JSON(http.StatusOK, entries)
}

// SingleWalletHandler handles GET /api/v1/portfolio/:chain/:address.
// It runs one wallet through the same pipeline as the batch endpoint and
// returns the single entry.
func (h *PortfolioHandler) SingleWalletHandler(c *gin.Context) {
	wallet := entity.WalletRequest{
		Chain:   entity.Chain(strings.ToUpper(c.Param("chain"))),
		Address: c.Param("address"),
	}

	entries := h.portfolioService.ResolvePortfolio(c.Request.Context(), []entity.WalletRequest{wallet})
	c.JSON(http.StatusOK, entries[0])
}

// ListChainsHandler handles GET /api/v1/chains.
func (h *PortfolioHandler) ListChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": h.registry.SupportedChains()})
}

// HealthzHandler handles GET /healthz.
func (h *PortfolioHandler) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
