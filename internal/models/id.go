// Package models содержит доменные структуры курсов, уроков и пользователей,
// а также канонический тип идентификатора записи.
//
// Хранилище записей возвращает идентификаторы то числом, то строкой,
// в зависимости от того, как запись была создана. Тип ID принимает обе формы
// при декодировании JSON, а все сравнения идентификаторов проходят через
// единственную функцию SameID.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID — идентификатор записи хранилища. Хранит исходное строковое
// представление значения, каким оно пришло из JSON.
type ID string

// NumericID создает ID из числового значения.
func NumericID(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// UnmarshalJSON принимает идентификатор как JSON-число или JSON-строку.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("models.ID: invalid identifier %s", data)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON сериализует числовые идентификаторы как числа,
// остальные — как строки, сохраняя форму записи в хранилище.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// Canonical возвращает каноническую форму идентификатора: числовые значения
// нормализуются ("07" и 7 эквивалентны), прочие строки возвращаются как есть.
func (id ID) Canonical() string {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return string(id)
}

// IsZero сообщает, что идентификатор не задан.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return id.Canonical()
}

// SameID сравнивает два идентификатора в канонической форме.
// Все проверки равенства идентификаторов в модуле обязаны идти через нее,
// прямое сравнение ID == ID не учитывает смешение числовой и строковой форм.
func SameID(a, b ID) bool {
	return a.Canonical() == b.Canonical()
}

// ContainsID сообщает, входит ли идентификатор в список (в канонической форме).
func ContainsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if SameID(v, id) {
			return true
		}
	}
	return false
}
