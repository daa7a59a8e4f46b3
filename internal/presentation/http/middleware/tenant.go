package middleware

import (
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantMiddleware verifies the authenticated tenant still exists and is
// active. Runs after AuthMiddleware.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil || tenant == nil {
			response.Forbidden(c, "Tenant not found")
			c.Abort()
			return
		}
		if !tenant.Active {
			response.Forbidden(c, "This business account is deactivated")
			c.Abort()
			return
		}

		c.Set("tenant", tenant)
		c.Next()
	}
}
