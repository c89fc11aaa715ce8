// Package statistics maintains the cached marketplace totals shown on the
// start page. Counting listings and users on every request would hammer the
// database, so the totals live in Redis and are refreshed at most every
// few minutes.
package statistics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/internal/pkg/cache"
	"github.com/franhub/franhub/internal/pkg/database"
)

const (
	keyListingsTotal = "statistics:listings:total"
	keyListingsDaily = "statistics:listings:daily:%s" // date suffix YYYY-MM-DD
	keyUsersTotal    = "statistics:users:total"

	cacheTTL        = 30 * time.Minute
	refreshInterval = 5 * time.Minute
)

// Data holds the marketplace totals rendered on the home page.
type Data struct {
	TodayListings int
	TotalUsers    int
	TotalListings int
}

var (
	refreshMu   sync.Mutex
	lastRefresh time.Time
)

// GetStatisticsData returns the current totals, refreshing the cache first
// when it has gone stale.
func GetStatisticsData() Data {
	refreshIfStale()

	return Data{
		TodayListings: todayListings(),
		TotalUsers:    totalUsers(),
		TotalListings: totalListings(),
	}
}

// UpdateStatisticsCache recounts everything and writes the totals to Redis.
// Controllers call it in a goroutine after creating users or listings so the
// home page picks the change up immediately instead of after the TTL.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	total, err := countListings(db)
	if err != nil {
		return err
	}

	today, err := countTodayListings(db)
	if err != nil {
		return err
	}

	users, err := countUsers(db)
	if err != nil {
		return err
	}

	if err := cache.Set(keyListingsTotal, strconv.FormatInt(total, 10), cacheTTL); err != nil {
		return err
	}

	if err := cache.Set(dailyKey(), strconv.FormatInt(today, 10), cacheTTL); err != nil {
		return err
	}

	return cache.Set(keyUsersTotal, strconv.FormatInt(users, 10), cacheTTL)
}

func refreshIfStale() {
	refreshMu.Lock()
	defer refreshMu.Unlock()

	if time.Since(lastRefresh) < refreshInterval {
		return
	}

	if err := UpdateStatisticsCache(); err != nil {
		log.Errorf("statistics refresh failed: %v", err)
		return
	}

	lastRefresh = time.Now()
}

// cachedCount reads a counter from Redis, falling back to a fresh database
// count (which is then written back) on a miss.
func cachedCount(key string, count func(*gorm.DB) (int64, error)) int {
	if val, err := cache.Get(key); err == nil {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}

	n, err := count(database.GetDB())
	if err != nil {
		log.Errorf("statistics count for %s failed: %v", key, err)
		return 0
	}

	if err := cache.Set(key, strconv.FormatInt(n, 10), cacheTTL); err != nil {
		log.Warnf("statistics cache write for %s failed: %v", key, err)
	}

	return int(n)
}

func totalListings() int { return cachedCount(keyListingsTotal, countListings) }
func totalUsers() int    { return cachedCount(keyUsersTotal, countUsers) }
func todayListings() int { return cachedCount(dailyKey(), countTodayListings) }

func countListings(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.Listing{}).Count(&n).Error
	return n, err
}

func countUsers(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func countTodayListings(db *gorm.DB) (int64, error) {
	start := time.Now().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var n int64
	err := db.Model(&models.Listing{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&n).Error
	return n, err
}

func dailyKey() string {
	return fmt.Sprintf(keyListingsDaily, time.Now().Format("2006-01-02"))
}
