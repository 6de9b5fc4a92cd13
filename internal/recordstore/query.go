package recordstore

import "net/url"

// Query — набор фильтров для списочного запроса к коллекции.
// Хранилище поддерживает точное совпадение поля (field=value) и
// нестрогое совпадение (field_like=value): для строковых полей это
// поиск подстроки, для полей-массивов — вхождение элемента.
type Query struct {
	values url.Values
}

// NewQuery создает пустой набор фильтров.
func NewQuery() Query {
	return Query{values: url.Values{}}
}

// Eq добавляет фильтр точного совпадения поля.
func (q Query) Eq(field, value string) Query {
	q.values.Add(field, value)
	return q
}

// Like добавляет фильтр поиска подстроки в строковом поле.
func (q Query) Like(field, value string) Query {
	q.values.Add(field+"_like", value)
	return q
}

// Contains добавляет фильтр вхождения значения в поле-массив.
// На уровне протокола совпадает с Like, отдельный метод фиксирует намерение.
func (q Query) Contains(field, value string) Query {
	q.values.Add(field+"_like", value)
	return q
}

// Encode возвращает фильтры в виде строки запроса URL.
func (q Query) Encode() string {
	if q.values == nil {
		return ""
	}
	return q.values.Encode()
}
