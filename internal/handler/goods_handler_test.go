package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hhhhhhjs/shopping-mall-program/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func seedGoodsData(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	category := model.GoodsCategory{Name: "水果", SortOrder: 1, Status: 1}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("预置分类失败: %v", err)
	}
	goods := []model.Goods{
		{Name: "苹果", CategoryID: category.ID, CategoryName: "水果", Price1: 10, Price2: 9, Price3: 8, Price4: 7, Status: 1},
		{Name: "香蕉", CategoryID: category.ID, CategoryName: "水果", Price1: 5, Price2: 4.5, Price3: 4, Price4: 3.5, Status: 1},
	}
	for i := range goods {
		if err := gdb.Create(&goods[i]).Error; err != nil {
			t.Fatalf("预置商品失败: %v", err)
		}
	}
}

// 测试内容：验证分类接口返回启用的分类。
func TestGetCategoriesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestHandlers(t, okGateway("o", "13800000000"))
	seedGoodsData(t, gdb)

	r := gin.New()
	r.GET("/categories", testGoodsHandler.GetCategories)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 || resp.Data[0].Name != "水果" {
		t.Fatalf("分类结果错误: %s", w.Body.String())
	}
}

// 测试内容：验证游客按 1 级价展示，上下文有等级时按对应档位。
func TestGetGoodsListHandler_LevelPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestHandlers(t, okGateway("o", "13800000000"))
	seedGoodsData(t, gdb)

	withLevel := func(level int) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("level", level)
			c.Next()
		}
	}

	r := gin.New()
	r.GET("/guest", testGoodsHandler.GetGoodsList)
	r.GET("/member", withLevel(3), testGoodsHandler.GetGoodsList)

	type listResp struct {
		Data struct {
			List []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
			} `json:"list"`
		} `json:"data"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guest?keyword=苹果", nil))
	var guest listResp
	_ = json.Unmarshal(w.Body.Bytes(), &guest)
	if len(guest.Data.List) != 1 || guest.Data.List[0].Price != 10 {
		t.Fatalf("游客应按 1 级价: %s", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/member?keyword=苹果", nil))
	var member listResp
	_ = json.Unmarshal(w2.Body.Bytes(), &member)
	if len(member.Data.List) != 1 || member.Data.List[0].Price != 8 {
		t.Fatalf("3 级用户应按 3 级价: %s", w2.Body.String())
	}
}

// 测试内容：验证分类ID参数格式错误返回 400。
func TestGetGoodsListHandler_BadCategoryIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestHandlers(t, okGateway("o", "13800000000"))

	r := gin.New()
	r.GET("/list", testGoodsHandler.GetGoodsList)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list?categoryIds=1,abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
}

// 测试内容：验证商品详情接口，商品不存在返回 404。
func TestGetGoodsDetailHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestHandlers(t, okGateway("o", "13800000000"))
	seedGoodsData(t, gdb)

	var banana model.Goods
	_ = gdb.Where("name = ?", "香蕉").First(&banana).Error

	r := gin.New()
	r.GET("/detail/:id", testGoodsHandler.GetGoodsDetail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/detail/"+strconv.FormatUint(uint64(banana.ID), 10), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	var detail struct {
		Data struct {
			CategoryName  string `json:"categoryName"`
			SupportPoints *bool  `json:"supportPoints"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if detail.Data.CategoryName != "水果" || detail.Data.SupportPoints == nil {
		t.Fatalf("商品详情应使用驼峰键名: %s", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/detail/99999", nil))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w2.Code)
	}

	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/detail/abc", nil))
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w3.Code)
	}
}
