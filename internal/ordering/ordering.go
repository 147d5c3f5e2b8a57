// Package ordering 维护带 order 列的集合：追加排序值、按序列出与批量重排。
//
// 并发写入同一行时以最后一次提交为准，批量重排在单个事务内完成，
// 任意 id 不存在时整批拒绝。
package ordering

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 重排时存在不存在的记录
var ErrNotFound = errors.New("record not found")

// Column 排序列名
const Column = "order"

// Position 单条重排指令
type Position struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

// MissingError lists every id of a reorder batch that does not exist.
type MissingError struct {
	IDs []uint
}

func (e *MissingError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), strings.Join(ids, ", "))
}

func (e *MissingError) Unwrap() error {
	return ErrNotFound
}

// Scope 查询过滤条件
type Scope = func(*gorm.DB) *gorm.DB

// Collection 对模型 T 的有序集合操作
type Collection[T any] struct {
	db *gorm.DB
}

// New 构造 Collection
func New[T any](gdb *gorm.DB) *Collection[T] {
	return &Collection[T]{db: gdb}
}

// DB returns the underlying handle.
func (c *Collection[T]) DB() *gorm.DB {
	return c.db
}

// Next 返回下一个排序值：当前最大值加一，空集合返回 1。
// tx 为 nil 时使用集合自身的连接。
func (c *Collection[T]) Next(tx *gorm.DB) (int, error) {
	if tx == nil {
		tx = c.db
	}
	var maxOrder int
	if err := tx.Model(new(T)).
		Select("COALESCE(MAX(?), 0)", clause.Column{Name: Column}).
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("resolve next order: %w", err)
	}
	return maxOrder + 1, nil
}

// Resolve 显式传入的排序值优先，否则追加到末尾。
func (c *Collection[T]) Resolve(tx *gorm.DB, explicit *int) (int, error) {
	if explicit != nil {
		if *explicit < 0 {
			return 0, validation.Field(Column, "must be at least 0")
		}
		return *explicit, nil
	}
	return c.Next(tx)
}

// OrderScope sorts by order ASC, id ASC.
func OrderScope(tx *gorm.DB) *gorm.DB {
	return tx.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: Column}},
		{Column: clause.Column{Name: "id"}},
	}})
}

// List 按 order ASC, id ASC 返回全部记录
func (c *Collection[T]) List(scopes ...Scope) ([]T, error) {
	var items []T
	query := c.db.Model(new(T)).Scopes(scopes...).Scopes(OrderScope)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list ordered: %w", err)
	}
	return items, nil
}

// Reorder 在一个事务内写入新的排序值。
// 先校验全部 order >= 0 且全部 id 存在，否则不写入任何行。
// 同一 id 出现多次时以最后一条为准。
func (c *Collection[T]) Reorder(positions []Position) error {
	if len(positions) == 0 {
		return validation.Field("items", "is required")
	}

	verr := validation.New()
	final := make(map[uint]int, len(positions))
	ids := make([]uint, 0, len(positions))
	for idx, pos := range positions {
		if pos.ID == 0 {
			verr.Add(fmt.Sprintf("items.%d.id", idx), "is required")
			continue
		}
		if pos.Order < 0 {
			verr.Add(fmt.Sprintf("items.%d.order", idx), "must be at least 0")
			continue
		}
		if _, seen := final[pos.ID]; !seen {
			ids = append(ids, pos.ID)
		}
		final[pos.ID] = pos.Order
	}
	if err := verr.Err(); err != nil {
		return err
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		var existing []uint
		if err := tx.Model(new(T)).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("load reorder targets: %w", err)
		}

		found := make(map[uint]struct{}, len(existing))
		for _, id := range existing {
			found[id] = struct{}{}
		}
		var missing []uint
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
			return &MissingError{IDs: missing}
		}

		for _, id := range ids {
			if err := tx.Model(new(T)).Where("id = ?", id).Update(Column, final[id]).Error; err != nil {
				return fmt.Errorf("update order: %w", err)
			}
		}
		return nil
	})
}
