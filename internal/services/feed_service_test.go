package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"locgm/internal/models"
	"locgm/internal/repositories"
	"locgm/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedService_Publish(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewFeedService(repositories.NewMemoryPostRepository(), publisher, zerolog.Nop())
	author := &models.User{Email: "loja@locgm.com", Role: models.RoleEmpresa, Name: "Minha Empresa", CompanyName: "Loja Central"}

	publisher.On("Publish", "feed", "post.created", mock.MatchedBy(func(body []byte) bool {
		var p models.Post
		return json.Unmarshal(body, &p) == nil && p.CompanyName == "Loja Central"
	})).Return(nil).Twice()

	first, err := service.Publish(author, " Promoção de pão! ")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Promoção de pão!", first.Content)
	assert.Equal(t, "Loja Central", first.CompanyName)

	_, err = service.Publish(author, "Café grátis")
	require.NoError(t, err)

	posts, err := service.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Café grátis", posts[0].Content)
	publisher.AssertExpectations(t)
}

func TestFeedService_BlankContentIsIgnored(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewFeedService(repositories.NewMemoryPostRepository(), publisher, zerolog.Nop())

	post, err := service.Publish(&models.User{Email: "loja@locgm.com", Name: "Loja"}, " \n\t ")
	assert.NoError(t, err)
	assert.Nil(t, post)

	posts, _ := service.List()
	assert.Empty(t, posts)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeedService_BrokerFailureDoesNotLosePost(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()
	service := services.NewFeedService(repositories.NewMemoryPostRepository(), publisher, zerolog.Nop())

	post, err := service.Publish(&models.User{Email: "loja@locgm.com", Name: "Loja"}, "Oferta")
	require.NoError(t, err)
	assert.Equal(t, "Loja", post.CompanyName)

	posts, _ := service.List()
	assert.Len(t, posts, 1)
}

func TestFeedService_WithoutBroker(t *testing.T) {
	service := services.NewFeedService(repositories.NewMemoryPostRepository(), nil, zerolog.Nop())
	post, err := service.Publish(&models.User{Email: "loja@locgm.com", Name: "Loja"}, "Oferta")
	require.NoError(t, err)
	assert.NotNil(t, post)
}
