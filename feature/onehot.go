// Copyright 2023 retailrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feature

import (
	"sort"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/dataset"
)

// DefaultColumns is the categorical attribute set encoded for the article
// catalog.
var DefaultColumns = []string{
	"product_type_no",
	"product_group_name",
	"graphical_appearance_no",
	"colour_group_code",
	"perceived_colour_value_id",
	"perceived_colour_master_id",
	"department_no",
	"index_code",
	"index_group_no",
	"section_no",
	"garment_group_no",
}

// OneHot encodes categorical item attributes into binary indicator columns.
// Indicator columns are named column:value and ordered by source column, then
// by value, so the encoding is deterministic for a fixed catalog. Indicator
// values are never scaled.
func OneHot(items []dataset.Item, columns []string) (*Matrix, error) {
	if len(items) == 0 {
		return nil, errors.New("cannot encode an empty item table")
	}
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	// collect distinct values per source column
	indicator := make([]string, 0)
	offsets := make(map[string]int)
	for _, column := range columns {
		values := make(map[string]struct{})
		for _, item := range items {
			value, ok := item.Attribute(column)
			if !ok {
				return nil, errors.Errorf("unknown attribute column: %s", column)
			}
			values[value] = struct{}{}
		}
		sorted := make([]string, 0, len(values))
		for value := range values {
			sorted = append(sorted, value)
		}
		sort.Strings(sorted)
		for _, value := range sorted {
			offsets[column+":"+value] = len(indicator)
			indicator = append(indicator, column+":"+value)
		}
	}
	// fill indicator rows
	ids := make([]string, len(items))
	rows := make([][]float32, len(items))
	for i, item := range items {
		ids[i] = item.ID
		row := make([]float32, len(indicator))
		for _, column := range columns {
			value, _ := item.Attribute(column)
			row[offsets[column+":"+value]] = 1
		}
		rows[i] = row
	}
	return NewMatrix(ids, indicator, rows)
}
