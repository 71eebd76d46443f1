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

package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base/log"
	"go.uber.org/zap"
)

const (
	ItemsFile        = "articles.csv"
	CustomersFile    = "customers.csv"
	TransactionsFile = "transactions.csv"
	RelevantFile     = "relevant.csv"
)

type columns map[string]int

func readTable(path string) (columns, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.Errorf("empty table: %s", path)
	}
	cols := make(columns, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	return cols, rows[1:], nil
}

func (c columns) get(row []string, name string) string {
	if i, ok := c[name]; ok && i < len(row) {
		return row[i]
	}
	return ""
}

// LoadItems reads the items table from a CSV file. Unknown columns are
// ignored; ids stay strings to preserve leading zeros.
func LoadItems(path string) ([]Item, error) {
	cols, rows, err := readTable(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if _, ok := cols["article_id"]; !ok {
		return nil, errors.Errorf("missing article_id column: %s", path)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:                      cols.get(row, "article_id"),
			ProductCode:             cols.get(row, "product_code"),
			ProductTypeNo:           cols.get(row, "product_type_no"),
			ProductGroupName:        cols.get(row, "product_group_name"),
			GraphicalAppearanceNo:   cols.get(row, "graphical_appearance_no"),
			ColourGroupCode:         cols.get(row, "colour_group_code"),
			PerceivedColourValueID:  cols.get(row, "perceived_colour_value_id"),
			PerceivedColourMasterID: cols.get(row, "perceived_colour_master_id"),
			DepartmentNo:            cols.get(row, "department_no"),
			IndexCode:               cols.get(row, "index_code"),
			IndexGroupNo:            cols.get(row, "index_group_no"),
			SectionNo:               cols.get(row, "section_no"),
			GarmentGroupNo:          cols.get(row, "garment_group_no"),
		})
	}
	return items, nil
}

// LoadCustomers reads the customers table from a CSV file.
func LoadCustomers(path string) ([]Customer, error) {
	cols, rows, err := readTable(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if _, ok := cols["customer_id"]; !ok {
		return nil, errors.Errorf("missing customer_id column: %s", path)
	}
	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, Customer{
			ID:                   cols.get(row, "customer_id"),
			ClubMemberStatus:     cols.get(row, "club_member_status"),
			FashionNewsFrequency: cols.get(row, "fashion_news_frequency"),
			Age:                  cols.get(row, "age"),
			PostalCode:           cols.get(row, "postal_code"),
		})
	}
	return customers, nil
}

// LoadTransactions reads the transactions table from a CSV file. The t_dat
// column is parsed into a date; rows with an unparsable date are rejected.
func LoadTransactions(path string) ([]Transaction, error) {
	cols, rows, err := readTable(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for _, name := range []string{"t_dat", "customer_id", "article_id"} {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("missing %s column: %s", name, path)
		}
	}
	transactions := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := dateparse.ParseAny(cols.get(row, "t_dat"))
		if err != nil {
			return nil, errors.Annotatef(err, "row %d of %s", i+1, path)
		}
		price, _ := strconv.ParseFloat(cols.get(row, "price"), 64)
		channel, _ := strconv.Atoi(cols.get(row, "sales_channel_id"))
		transactions = append(transactions, Transaction{
			Date:       date,
			CustomerID: cols.get(row, "customer_id"),
			ItemID:     cols.get(row, "article_id"),
			Price:      price,
			Channel:    channel,
		})
	}
	return transactions, nil
}

// LoadDataset reads the three tables of a dataset directory.
func LoadDataset(dir string) (*Dataset, error) {
	items, err := LoadItems(filepath.Join(dir, ItemsFile))
	if err != nil {
		return nil, errors.Trace(err)
	}
	customers, err := LoadCustomers(filepath.Join(dir, CustomersFile))
	if err != nil {
		return nil, errors.Trace(err)
	}
	transactions, err := LoadTransactions(filepath.Join(dir, TransactionsFile))
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("loaded dataset",
		zap.String("dir", dir),
		zap.Int("items", len(items)),
		zap.Int("customers", len(customers)),
		zap.Int("transactions", len(transactions)))
	return NewDataset(items, customers, transactions), nil
}

// LoadRelevant reads a persisted relevant set. The persisted form has exactly
// two columns: customer_id and target.
func LoadRelevant(path string) (*RelevantSet, error) {
	cols, rows, err := readTable(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for _, name := range []string{"customer_id", "target"} {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("missing %s column: %s", name, path)
		}
	}
	customerIDs := make([]string, 0, len(rows))
	targets := make([]string, 0, len(rows))
	for _, row := range rows {
		customerIDs = append(customerIDs, cols.get(row, "customer_id"))
		targets = append(targets, cols.get(row, "target"))
	}
	return NewRelevantSet(customerIDs, targets)
}

// SaveRelevant persists a relevant set as a two column CSV file.
func SaveRelevant(path string, relevant *RelevantSet) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	defer writer.Flush()
	if err := writer.Write([]string{"customer_id", "target"}); err != nil {
		return errors.Trace(err)
	}
	for _, customerID := range relevant.CustomerIDs() {
		target, _ := relevant.Target(customerID)
		if err := writer.Write([]string{customerID, target}); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// SaveDataset writes the three tables of a dataset into a directory.
func SaveDataset(dir string, d *Dataset) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Trace(err)
	}
	if err := saveItems(filepath.Join(dir, ItemsFile), d.Items); err != nil {
		return errors.Trace(err)
	}
	if err := saveCustomers(filepath.Join(dir, CustomersFile), d.Customers); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(saveTransactions(filepath.Join(dir, TransactionsFile), d.Transactions))
}

func saveItems(path string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	defer writer.Flush()
	header := []string{"article_id", "product_code", "product_type_no", "product_group_name",
		"graphical_appearance_no", "colour_group_code", "perceived_colour_value_id",
		"perceived_colour_master_id", "department_no", "index_code", "index_group_no",
		"section_no", "garment_group_no"}
	if err := writer.Write(header); err != nil {
		return errors.Trace(err)
	}
	for _, item := range items {
		row := []string{item.ID, item.ProductCode, item.ProductTypeNo, item.ProductGroupName,
			item.GraphicalAppearanceNo, item.ColourGroupCode, item.PerceivedColourValueID,
			item.PerceivedColourMasterID, item.DepartmentNo, item.IndexCode, item.IndexGroupNo,
			item.SectionNo, item.GarmentGroupNo}
		if err := writer.Write(row); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func saveCustomers(path string, customers []Customer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	defer writer.Flush()
	if err := writer.Write([]string{"customer_id", "club_member_status",
		"fashion_news_frequency", "age", "postal_code"}); err != nil {
		return errors.Trace(err)
	}
	for _, customer := range customers {
		if err := writer.Write([]string{customer.ID, customer.ClubMemberStatus,
			customer.FashionNewsFrequency, customer.Age, customer.PostalCode}); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func saveTransactions(path string, transactions []Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	defer writer.Flush()
	if err := writer.Write([]string{"t_dat", "customer_id", "article_id",
		"price", "sales_channel_id"}); err != nil {
		return errors.Trace(err)
	}
	for _, t := range transactions {
		if err := writer.Write([]string{
			t.Date.Format("2006-01-02"),
			t.CustomerID,
			t.ItemID,
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.Itoa(t.Channel),
		}); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
