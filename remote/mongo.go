package remote

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzeria-go/models"
)

const databaseName = "pizzeria"

// mongoDirectory implements UserDirectory on the users collection.
type mongoDirectory struct {
	users *mongo.Collection
}

// NewUserDirectory returns the mongo-backed user directory.
func NewUserDirectory(client *mongo.Client) UserDirectory {
	return &mongoDirectory{users: client.Database(databaseName).Collection("users")}
}

func (d *mongoDirectory) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := d.users.FindOne(ctx, bson.M{"email": email, "is_active": true}).Decode(&user)
	return user, wrap("user lookup", err, mongo.ErrNoDocuments)
}

func (d *mongoDirectory) Insert(ctx context.Context, user models.User) (models.User, error) {
	user.CreatedAt = time.Now()
	user.IsActive = true
	res, err := d.users.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, wrap("user insert", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (d *mongoDirectory) UpdateLastLogin(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	_, err = d.users.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"last_login": time.Now()}})
	return wrap("last-login update", err)
}

func (d *mongoDirectory) UpdateProfile(ctx context.Context, userID, fullName, phone string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	_, err = d.users.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"full_name": fullName,
		"phone":     phone,
	}})
	return wrap("profile update", err)
}

// mongoOrders implements OrderService on the orders and order_items collections.
type mongoOrders struct {
	orders    *mongo.Collection
	items     *mongo.Collection
	addresses *mongo.Collection
}

// NewOrderService returns the mongo-backed order service.
func NewOrderService(client *mongo.Client) OrderService {
	db := client.Database(databaseName)
	return &mongoOrders{
		orders:    db.Collection("orders"),
		items:     db.Collection("order_items"),
		addresses: db.Collection("shipping_addresses"),
	}
}

func (o *mongoOrders) InsertOrder(ctx context.Context, order models.Order) (models.Order, error) {
	order.CreatedAt = time.Now()
	res, err := o.orders.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, wrap("order insert", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return order, nil
}

func (o *mongoOrders) InsertItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i, it := range items {
		docs[i] = it
	}
	_, err := o.items.InsertMany(ctx, docs)
	return wrap("order items insert", err)
}

func (o *mongoOrders) UpdateStatus(ctx context.Context, orderID, status string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrNotFound
	}
	_, err = o.orders.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	return wrap("order status update", err)
}

func (o *mongoOrders) ListByUser(ctx context.Context, userID string) ([]models.OrderWithItems, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := o.orders.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, wrap("order list", err)
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, wrap("order list decode", err)
	}

	out := make([]models.OrderWithItems, 0, len(orders))
	for _, ord := range orders {
		row := models.OrderWithItems{Order: ord}

		icur, err := o.items.Find(ctx, bson.M{"order_id": ord.ID})
		if err != nil {
			return nil, wrap("order items list", err)
		}
		if err := icur.All(ctx, &row.Items); err != nil {
			return nil, wrap("order items decode", err)
		}

		if ord.AddressID != "" {
			if oid, err := primitive.ObjectIDFromHex(ord.AddressID); err == nil {
				var addr models.Address
				if err := o.addresses.FindOne(ctx, bson.M{"_id": oid}).Decode(&addr); err == nil {
					row.Address = &addr
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// mongoAddresses implements AddressService on the shipping_addresses collection.
type mongoAddresses struct {
	addresses *mongo.Collection
}

// NewAddressService returns the mongo-backed address service.
func NewAddressService(client *mongo.Client) AddressService {
	return &mongoAddresses{addresses: client.Database(databaseName).Collection("shipping_addresses")}
}

func (a *mongoAddresses) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := a.addresses.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, wrap("address list", err)
	}
	var out []models.Address
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap("address list decode", err)
	}
	return out, nil
}

func (a *mongoAddresses) Insert(ctx context.Context, addr models.Address) (models.Address, error) {
	addr.CreatedAt = time.Now()
	res, err := a.addresses.InsertOne(ctx, addr)
	if err != nil {
		return models.Address{}, wrap("address insert", err)
	}
	addr.ID = res.InsertedID.(primitive.ObjectID)
	return addr, nil
}

func (a *mongoAddresses) Update(ctx context.Context, addr models.Address) error {
	res, err := a.addresses.UpdateByID(ctx, addr.ID, bson.M{"$set": bson.M{
		"neighborhood":    addr.Neighborhood,
		"property_type":   addr.PropertyType,
		"address":         addr.Street,
		"municipality":    addr.Municipality,
		"city":            addr.City,
		"phone":           addr.Phone,
		"additional_info": addr.Notes,
	}})
	if err != nil {
		return wrap("address update", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *mongoAddresses) Delete(ctx context.Context, addressID string) error {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return ErrNotFound
	}
	res, err := a.addresses.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrap("address delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *mongoAddresses) MarkDefault(ctx context.Context, addressID string) error {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return ErrNotFound
	}
	res, err := a.addresses.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"is_default": true}})
	if err != nil {
		return wrap("mark default", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *mongoAddresses) ClearDefaults(ctx context.Context, userID string) error {
	_, err := a.addresses.UpdateMany(ctx, bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_default": false}})
	return wrap("clear defaults", err)
}

// mongoMenu implements Menu on the menu collection.
type mongoMenu struct {
	menu *mongo.Collection
}

// NewMenu returns the mongo-backed pizza catalog.
func NewMenu(client *mongo.Client) Menu {
	return &mongoMenu{menu: client.Database(databaseName).Collection("menu")}
}

func (m *mongoMenu) List(ctx context.Context) ([]models.MenuItem, error) {
	cur, err := m.menu.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrap("menu list", err)
	}
	var out []models.MenuItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap("menu list decode", err)
	}
	return out, nil
}

func (m *mongoMenu) Get(ctx context.Context, id string) (models.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.MenuItem{}, ErrNotFound
	}
	var item models.MenuItem
	err = m.menu.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	return item, wrap("menu lookup", err, mongo.ErrNoDocuments)
}

func (m *mongoMenu) Insert(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	res, err := m.menu.InsertOne(ctx, item)
	if err != nil {
		return models.MenuItem{}, wrap("menu insert", err)
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (m *mongoMenu) Update(ctx context.Context, item models.MenuItem) error {
	res, err := m.menu.UpdateByID(ctx, item.ID, bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"image_url":   item.ImageURL,
		"ingredients": item.Ingredients,
	}})
	if err != nil {
		return wrap("menu update", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoMenu) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.menu.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrap("menu delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
